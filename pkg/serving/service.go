package serving

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carelens-ai/platform/pkg/analytics/pivot"
	"github.com/carelens-ai/platform/pkg/analytics/scale"
	"github.com/carelens-ai/platform/pkg/classifier"
	"github.com/carelens-ai/platform/pkg/common/logger"
	"github.com/carelens-ai/platform/pkg/common/models"
	"github.com/carelens-ai/platform/pkg/mentions"
	"github.com/carelens-ai/platform/pkg/normalizer"
	"github.com/carelens-ai/platform/pkg/observability/metrics"
	"github.com/carelens-ai/platform/pkg/taxonomy"
)

var ErrUnknownKind = errors.New("unknown pivot kind")

type Service struct {
	repo    *mentions.Repository
	norm    *normalizer.Normalizer
	cls     *classifier.Classifier
	tax     taxonomy.Taxonomy
	cache   *PivotCache
	maxRows int
}

func NewService(repo *mentions.Repository, norm *normalizer.Normalizer, cls *classifier.Classifier, tax taxonomy.Taxonomy, cache *PivotCache, maxRows int) *Service {
	if maxRows <= 0 {
		maxRows = pivot.DefaultMaxRows
	}
	return &Service{
		repo:    repo,
		norm:    norm,
		cls:     cls,
		tax:     tax,
		cache:   cache,
		maxRows: maxRows,
	}
}

// BuildPivot serves one pivot request: resolve the kind, try the cache,
// otherwise fetch the selector's raw rows, normalize them, aggregate, and
// cache the result. The rendering decoration is computed per request from
// whichever table is returned.
func (s *Service) BuildPivot(ctx context.Context, req models.PivotRequest) (*models.PivotResponse, error) {
	kind, ok := pivot.KindByName(req.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}

	maxRows := req.MaxRows
	if maxRows <= 0 || maxRows > s.maxRows {
		maxRows = s.maxRows
	}

	start := time.Now()
	key := s.cache.Key(ctx, kind.Name(), req.PatientIDs, maxRows)
	if cached, hit := s.cache.Get(ctx, key); hit {
		metrics.RecordPivot(kind.Name(), true, 0)
		return s.respond(req, kind, cached, true), nil
	}

	rows, err := s.repo.RowsForPatients(ctx, req.PatientIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching mention rows: %w", err)
	}

	records, stats := s.norm.NormalizeAll(rows)
	metrics.RecordRejectedRows(stats.Counts())
	if rejected := stats.Total(); rejected > 0 {
		logger.Log.WithFields(map[string]interface{}{
			"kind":     kind.Name(),
			"rejected": rejected,
			"fetched":  len(rows),
		}).Warn("dropped unparseable mention rows")
	}

	table := pivot.Aggregate(records, kind, maxRows)
	cached := cachedPivot{
		Table:      table,
		Rejected:   stats.Counts(),
		Fetched:    len(rows),
		ComputedAt: time.Now().UTC(),
	}
	s.cache.Set(ctx, key, cached)
	metrics.RecordPivot(kind.Name(), false, time.Since(start).Seconds())

	return s.respond(req, kind, &cached, false), nil
}

func (s *Service) respond(req models.PivotRequest, kind pivot.Kind, cached *cachedPivot, hit bool) *models.PivotResponse {
	resp := &models.PivotResponse{
		Pivot: cached.Table,
		Meta: models.PivotMeta{
			Kind:        kind.Name(),
			RowsFetched: cached.Fetched,
			Rejected:    cached.Rejected,
			CacheHit:    hit,
			ComputedAt:  cached.ComputedAt,
		},
	}
	if req.Decorate {
		resp.Rendering = scale.Decorate(cached.Table)
	}
	return resp
}

// KindNames lists the pivot kinds this service can build.
func (s *Service) KindNames() []string {
	return pivot.KindNames()
}

// TaxonomySummary lists the loaded categories with their trigger counts,
// for dashboard legends.
func (s *Service) TaxonomySummary() []models.CategorySummary {
	summary := make([]models.CategorySummary, 0, s.tax.Len())
	for _, cat := range s.tax.Categories {
		summary = append(summary, models.CategorySummary{
			Name:         cat.Name,
			TriggerCount: len(cat.Triggers),
		})
	}
	return summary
}

// ClassifyNote runs one note through the keyword classifier.
func (s *Service) ClassifyNote(text string) models.ClassifyResponse {
	categories := s.cls.Classify(text)
	flags := make(map[string]string, len(categories))
	for _, category := range categories {
		flags[category] = classifier.FlagYes
	}
	metrics.RecordClassification(len(categories))
	return models.ClassifyResponse{Categories: categories, Flags: flags}
}

// HandleEvent is the bus callback for the analytics side. Any landed
// mention batch makes every cached pivot stale.
func (s *Service) HandleEvent(ctx context.Context, event models.Event) error {
	switch event.Type {
	case models.EventMentionBatch:
		s.cache.Invalidate(ctx)
		logger.Log.WithFields(map[string]interface{}{
			"event_id": event.ID,
			"batch_id": event.Data["batch_id"],
		}).Info("pivot cache invalidated")
	default:
		logger.Log.WithField("type", event.Type).Debug("ignoring event")
	}
	return nil
}

package ingestion

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/carelens-ai/platform/pkg/classifier"
	"github.com/carelens-ai/platform/pkg/common/kafka"
	"github.com/carelens-ai/platform/pkg/common/logger"
	"github.com/carelens-ai/platform/pkg/common/models"
	"github.com/carelens-ai/platform/pkg/mentions"
	"github.com/carelens-ai/platform/pkg/normalizer"
	"github.com/carelens-ai/platform/pkg/observability/metrics"
	"github.com/carelens-ai/platform/pkg/redact"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Service struct {
	validator  *Validator
	repo       *mentions.Repository
	classifier *classifier.Classifier
	scrubber   *redact.Scrubber
	fields     normalizer.FieldMap
	producer   *kafka.Producer
	dlq        *kafka.Producer
	noteFields []string
	statusTTL  time.Duration
}

func NewService(validator *Validator, repo *mentions.Repository, cls *classifier.Classifier, scrubber *redact.Scrubber, fields normalizer.FieldMap, producer *kafka.Producer, dlq *kafka.Producer, noteFields []string, statusTTL time.Duration) *Service {
	return &Service{
		validator:  validator,
		repo:       repo,
		classifier: cls,
		scrubber:   scrubber,
		fields:     fields,
		producer:   producer,
		dlq:        dlq,
		noteFields: noteFields,
		statusTTL:  statusTTL,
	}
}

// Process accepts one upload batch: scrubs identifiers out of note text,
// merges classifier flags into each row, persists the batch and its rows,
// and announces the batch on the bus. Rows are stored raw; normalization
// happens on the analytics side at read time.
func (s *Service) Process(ctx context.Context, req models.MentionBatchRequest) (*models.MentionBatchResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	batchID := uuid.New().String()

	scrubbed := s.scrubber.ScrubRows(req.Rows, s.noteFields)
	metrics.RecordScrubbedMatches(scrubbed)

	patients := make(map[string]struct{})
	rows := make([]mentions.Row, 0, len(req.Rows))
	for _, raw := range req.Rows {
		s.mergeFlags(raw)

		patientID := s.fields.ResolvePatientID(raw)
		if patientID == "" {
			patientID = req.PatientID
		}
		if patientID != "" {
			patients[patientID] = struct{}{}
		}

		rows = append(rows, mentions.Row{
			ID:        uuid.New().String(),
			BatchID:   batchID,
			Source:    req.Source,
			Era:       req.Era,
			PatientID: patientID,
			Payload:   datatypes.JSONMap(raw),
		})
	}

	batch := &mentions.Batch{
		ID:       batchID,
		Source:   req.Source,
		Era:      req.Era,
		RowCount: len(rows),
		Scrubbed: scrubbed,
		Status:   mentions.StatusAccepted,
	}
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("persisting batch: %w", err)
	}
	if err := s.repo.InsertRows(ctx, rows); err != nil {
		_ = s.repo.UpdateBatchStatus(ctx, batchID, mentions.StatusFailed, err.Error())
		return nil, fmt.Errorf("persisting rows: %w", err)
	}

	payload := map[string]interface{}{
		"batch_id":    batchID,
		"source":      req.Source,
		"era":         req.Era,
		"row_count":   len(rows),
		"patient_ids": sortedKeys(patients),
	}

	if sendErr := s.producer.PublishEvent(ctx, models.EventMentionBatch, req.Source, payload); sendErr != nil {
		logger.Log.WithError(sendErr).Error("failed to publish mention batch event")
		_ = s.repo.UpdateBatchStatus(ctx, batchID, mentions.StatusFailed, sendErr.Error())
		if s.dlq != nil {
			if dlqErr := s.dlq.PublishEvent(ctx, models.EventMentionBatch, req.Source, payload); dlqErr != nil {
				logger.Log.WithError(dlqErr).Error("failed to push event to DLQ")
			}
		}
		return nil, fmt.Errorf("publishing event: %w", sendErr)
	}

	_ = s.repo.UpdateBatchStatus(ctx, batchID, mentions.StatusPublished, "")
	metrics.RecordRowsIngested(req.Source, len(rows))

	return &models.MentionBatchResponse{
		BatchID:   batchID,
		Status:    mentions.StatusPublished,
		RowCount:  len(rows),
		Timestamp: time.Now().UTC(),
	}, nil
}

// ClassifyNote runs a single note through the keyword classifier without
// touching storage.
func (s *Service) ClassifyNote(text string) models.ClassifyResponse {
	categories := s.classifier.Classify(text)
	flags := make(map[string]string, len(categories))
	for _, category := range categories {
		flags[category] = classifier.FlagYes
	}
	metrics.RecordClassification(len(categories))
	return models.ClassifyResponse{Categories: categories, Flags: flags}
}

func (s *Service) Status(ctx context.Context, id string) (*mentions.Batch, error) {
	return s.repo.GetBatch(ctx, id)
}

func (s *Service) Cleanup(ctx context.Context) error {
	return s.repo.CleanupExpiredBatches(ctx, s.statusTTL)
}

// mergeFlags classifies the row's note text and merges the resulting
// social-needs flags into the row, so they persist alongside the fields
// the row arrived with. Fields already present are never overwritten.
func (s *Service) mergeFlags(row map[string]interface{}) {
	if s.classifier == nil {
		return
	}
	text := noteText(row, s.noteFields)
	if text == "" {
		return
	}
	flags := s.classifier.Flags(text)
	metrics.RecordClassification(len(flags))
	for category, yes := range flags {
		if _, exists := row[category]; !exists {
			row[category] = yes
		}
	}
}

func noteText(row map[string]interface{}, noteFields []string) string {
	for _, field := range noteFields {
		for key, value := range row {
			if !strings.EqualFold(key, field) {
				continue
			}
			if text, ok := value.(string); ok && strings.TrimSpace(text) != "" {
				return text
			}
		}
	}
	return ""
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

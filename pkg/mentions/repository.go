package mentions

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("mention batch not found")

const insertChunkSize = 500

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Batch{}, &Row{})
}

func (r *Repository) CreateBatch(ctx context.Context, batch *Batch) error {
	batch.CreatedAt = time.Now().UTC()
	batch.UpdatedAt = batch.CreatedAt
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *Repository) UpdateBatchStatus(ctx context.Context, id, status, errMsg string) error {
	return r.db.WithContext(ctx).Model(&Batch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"error":      errMsg,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *Repository) GetBatch(ctx context.Context, id string) (*Batch, error) {
	var batch Batch
	result := r.db.WithContext(ctx).First(&batch, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &batch, result.Error
}

func (r *Repository) InsertRows(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range rows {
		rows[i].CreatedAt = now
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, insertChunkSize).Error
}

// RowsForPatients returns the raw payloads for the given patient selector,
// every stored row when the selector is empty. Rows come back in upload
// order; normalization and aggregation happen in the caller.
func (r *Repository) RowsForPatients(ctx context.Context, patientIDs []string) ([]map[string]interface{}, error) {
	tx := r.db.WithContext(ctx).Model(&Row{})
	if len(patientIDs) > 0 {
		tx = tx.Where("patient_id IN ?", patientIDs)
	}

	var rows []Row
	if err := tx.Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	payloads := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		payloads = append(payloads, map[string]interface{}(row.Payload))
	}
	return payloads, nil
}

func (r *Repository) CountRows(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Row{}).Count(&count).Error
	return count, err
}

// CleanupExpiredBatches removes batch status records older than ttl. The
// rows themselves are the durable store and are never expired here.
func (r *Repository) CleanupExpiredBatches(ctx context.Context, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	cutoff := time.Now().UTC().Add(-ttl)
	return r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&Batch{}).Error
}

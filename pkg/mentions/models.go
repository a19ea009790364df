package mentions

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusAccepted  = "accepted"
	StatusPublished = "published"
	StatusFailed    = "failed"
)

// Batch tracks one upload as a unit: how many rows it carried, how many
// identifier matches were scrubbed from its note text, and whether its
// event made it onto the bus.
type Batch struct {
	ID        string    `json:"id" gorm:"primaryKey;column:id"`
	Source    string    `json:"source" gorm:"column:source"`
	Era       string    `json:"era,omitempty" gorm:"column:era"`
	RowCount  int       `json:"row_count" gorm:"column:row_count"`
	Scrubbed  int       `json:"scrubbed" gorm:"column:scrubbed"`
	Status    string    `json:"status" gorm:"column:status"`
	Error     string    `json:"error,omitempty" gorm:"column:error"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Batch) TableName() string {
	return "mention_batches"
}

// Row is one raw mention row as uploaded. The payload keeps every era
// field name untouched; rows are normalized at read time, so
// reinterpreting an old upload never needs a data migration. PatientID is
// denormalized out of the payload purely as a query index.
type Row struct {
	ID        string            `json:"id" gorm:"primaryKey;column:id"`
	BatchID   string            `json:"batch_id" gorm:"column:batch_id;index"`
	Source    string            `json:"source" gorm:"column:source"`
	Era       string            `json:"era,omitempty" gorm:"column:era"`
	PatientID string            `json:"patient_id,omitempty" gorm:"column:patient_id;index"`
	Payload   datatypes.JSONMap `json:"payload" gorm:"column:payload"`
	CreatedAt time.Time         `json:"created_at" gorm:"column:created_at"`
}

func (Row) TableName() string {
	return "mention_rows"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ViewCount is the persisted per-client detail-view tally. One row per
// client, created lazily on first view. Rows are retained even after the
// referenced client is soft-deleted.
type ViewCount struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ClientID  uuid.UUID `json:"clientId" gorm:"column:client_id;type:char(36);uniqueIndex;not null"`
	Count     int64     `json:"count" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the table name aligned with the persisted schema.
func (ViewCount) TableName() string { return "view_counts" }

// BeforeCreate sets UUID before creating the record.
func (v *ViewCount) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Client represents a managed client record. Deletion is soft: DeletedAt
// marks the record logically absent from default listings while the row
// is retained physically.
type Client struct {
	ID           uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string          `json:"name" gorm:"size:255;not null"`
	Salary       decimal.Decimal `json:"salary" gorm:"type:decimal(10,2);not null"`
	CompanyValue decimal.Decimal `json:"companyValue" gorm:"column:company_value;type:decimal(12,2);not null"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt  `json:"deletedAt" gorm:"index"`
}

// TableName keeps the table name aligned with the persisted schema.
func (Client) TableName() string { return "clients" }

// BeforeCreate sets UUID before creating the record.
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Deleted reports whether the record has been soft-deleted.
func (c *Client) Deleted() bool {
	return c.DeletedAt.Valid
}

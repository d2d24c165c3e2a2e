// Package domain contains invoice models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice carries Total and TotalPaid only. Retainer credits applied to an
// invoice are folded into TotalPaid when the deduction is recorded, so the
// balance is always Total minus TotalPaid and nothing else.
type Invoice struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID    `gorm:"not null;index" json:"org_id"`
	CaseID        snowflake.ID    `gorm:"not null;index" json:"case_id"`
	InvoiceNumber string          `gorm:"type:text;not null" json:"invoice_number"`
	Status        string          `gorm:"type:text;not null;default:'draft'" json:"status"`
	Total         decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"total"`
	TotalPaid     decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"total_paid"`
	IssuedAt      *time.Time      `json:"issued_at,omitempty"`
	CreatedBy     snowflake.ID    `gorm:"not null" json:"created_by"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// Balance is derived on every read and never stored.
func (i *Invoice) Balance() decimal.Decimal {
	return i.Total.Sub(i.TotalPaid)
}

// Package domain contains the retainer fund ledger models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

const (
	EntryTypeDeposit   = "deposit"
	EntryTypeDeduction = "deduction"
)

// RetainerEntry is one signed movement of client funds held on a case.
// Deposits are positive, deductions negative. InvoiceID records which invoice
// a deduction offset; it is nulled if that invoice is later removed, the
// entry itself is never deleted.
type RetainerEntry struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID    `gorm:"not null;index" json:"org_id"`
	CaseID    snowflake.ID    `gorm:"not null;index" json:"case_id"`
	EntryType string          `gorm:"type:text;not null" json:"entry_type"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	InvoiceID *snowflake.ID   `gorm:"index" json:"invoice_id,omitempty"`
	Note      string          `gorm:"type:text" json:"note"`
	CreatedBy snowflake.ID    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (RetainerEntry) TableName() string { return "retainer_entries" }

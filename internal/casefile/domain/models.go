// Package domain contains the case model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Case is the unit of work a tenant manages. BudgetHours and BudgetDollars
// are authorized ceilings; consumption against them is always derived from
// billing items, never stored here.
type Case struct {
	ID              snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrgID           snowflake.ID    `gorm:"not null;index;uniqueIndex:ux_cases_org_reference,priority:1" json:"org_id"`
	ReferenceNumber string          `gorm:"type:text;not null;uniqueIndex:ux_cases_org_reference,priority:2" json:"reference_number"`
	Title           string          `gorm:"type:text;not null" json:"title"`
	Status          string          `gorm:"type:text;not null" json:"status"`
	BudgetHours     decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"budget_hours"`
	BudgetDollars   decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"budget_dollars"`
	CreatedBy       snowflake.ID    `gorm:"not null" json:"created_by"`
	CreatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (Case) TableName() string { return "cases" }

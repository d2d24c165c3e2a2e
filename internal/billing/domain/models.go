// Package domain contains billing item models and the derived budget
// summary. Financial aggregates are always recomputed from rows here,
// never stored.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Finance types. Only expense and time count toward dollar consumption.
const (
	FinanceTypeExpense = "expense"
	FinanceTypeTime    = "time"
	FinanceTypeOther   = "other"
)

const (
	BillingTypeTime    = "time"
	BillingTypeExpense = "expense"
)

const (
	PricingModelHourly      = "hourly"
	PricingModelDaily       = "daily"
	PricingModelPerActivity = "per_activity"
	PricingModelFlat        = "flat"
)

// StatusRejected excludes a row from every aggregate.
const StatusRejected = "rejected"

// BillingItem is one financial event on a case. Amount is signed; credits
// and corrections are negative rows rather than mutations of history.
// CaseUpdateID is unique so a narrative update is never claimed by two rows,
// which also makes the legacy backfill safe to run concurrently.
type BillingItem struct {
	ID                snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrgID             snowflake.ID    `gorm:"not null;index" json:"org_id"`
	CaseID            snowflake.ID    `gorm:"not null;index" json:"case_id"`
	FinanceType       string          `gorm:"type:text;not null" json:"finance_type"`
	BillingType       string          `gorm:"type:text;not null" json:"billing_type"`
	PricingModel      string          `gorm:"type:text;not null" json:"pricing_model"`
	Amount            decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Hours             decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"hours"`
	Description       string          `gorm:"type:text" json:"description"`
	Status            *string         `gorm:"type:text" json:"status,omitempty"`
	ActivityType      *string         `gorm:"type:text" json:"activity_type,omitempty"`
	InvoiceID         *snowflake.ID   `gorm:"index" json:"invoice_id,omitempty"`
	ServiceInstanceID *snowflake.ID   `gorm:"index" json:"service_instance_id,omitempty"`
	CaseUpdateID      *snowflake.ID   `gorm:"uniqueIndex:ux_billing_items_case_update" json:"case_update_id,omitempty"`
	IncurredByUserID  *snowflake.ID   `json:"incurred_by_user_id,omitempty"`
	CreatedAt         time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (BillingItem) TableName() string { return "billing_items" }

// BudgetSummary compares a case's authorized ceilings to consumption derived
// from its non-rejected billing items.
type BudgetSummary struct {
	CaseID                snowflake.ID    `json:"case_id"`
	BudgetHours           decimal.Decimal `json:"budget_hours"`
	BudgetDollars         decimal.Decimal `json:"budget_dollars"`
	ConsumedHours         decimal.Decimal `json:"consumed_hours"`
	ConsumedDollars       decimal.Decimal `json:"consumed_dollars"`
	RemainingHours        decimal.Decimal `json:"remaining_hours"`
	RemainingDollars      decimal.Decimal `json:"remaining_dollars"`
	HoursUtilizationPct   decimal.Decimal `json:"hours_utilization_pct"`
	DollarsUtilizationPct decimal.Decimal `json:"dollars_utilization_pct"`
}

package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateRequest struct {
	CaseID            string          `json:"case_id"`
	FinanceType       string          `json:"finance_type"`
	BillingType       string          `json:"billing_type"`
	PricingModel      string          `json:"pricing_model"`
	Amount            decimal.Decimal `json:"amount"`
	Hours             decimal.Decimal `json:"hours"`
	Description       string          `json:"description"`
	Status            *string         `json:"status,omitempty"`
	InvoiceID         *string         `json:"invoice_id,omitempty"`
	ServiceInstanceID *string         `json:"service_instance_id,omitempty"`
	CaseUpdateID      *string         `json:"case_update_id,omitempty"`
	IncurredByUserID  *string         `json:"incurred_by_user_id,omitempty"`
}

// ReconcileReport summarizes one legacy backfill pass.
type ReconcileReport struct {
	Scanned int `json:"scanned"`
	Linked  int `json:"linked"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *BillingItem) error
	FindByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*BillingItem, error)
	ListByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]BillingItem, error)
	// ListActiveByCase excludes rejected rows; it is the aggregation source.
	ListActiveByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]BillingItem, error)
	// ListLegacyUnlinked returns rows tied to an event-type activity that
	// still lack a case update link, oldest first, capped at limit.
	ListLegacyUnlinked(ctx context.Context, limit int) ([]BillingItem, error)
	LinkCaseUpdate(ctx context.Context, itemID snowflake.ID, updateID snowflake.ID) error
}

type Service interface {
	Create(ctx context.Context, orgID snowflake.ID, req CreateRequest) (*BillingItem, error)
	Get(ctx context.Context, orgID snowflake.ID, id string) (*BillingItem, error)
	ListByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]BillingItem, error)
	// ComputeBudgetSummary derives consumption for the case from its
	// non-rejected billing items on every call.
	ComputeBudgetSummary(ctx context.Context, orgID snowflake.ID, caseID string) (*BudgetSummary, error)
	// ReconcileLegacyBilling links historic event-derived billing rows to
	// synthesized case updates in bounded batches. Idempotent; already linked
	// rows are skipped, and a row that fails is logged and left for a later
	// pass rather than aborting the run.
	ReconcileLegacyBilling(ctx context.Context, batchSize int) (*ReconcileReport, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidCase         = errors.New("invalid_case")
	ErrInvalidFinanceType  = errors.New("invalid_finance_type")
	ErrInvalidBillingType  = errors.New("invalid_billing_type")
	ErrInvalidPricingModel = errors.New("invalid_pricing_model")
	ErrInvalidHours        = errors.New("invalid_hours")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")

	// ErrAlreadyLinked reports that another writer linked the billing row
	// first. The caller must roll back anything it created for the row.
	ErrAlreadyLinked = errors.New("billing_item_already_linked")

	// ErrZeroAmount rejects amountless rows. A zero amount is always a caller
	// bug; record a signed correction instead of a zero row.
	ErrZeroAmount = errors.New("amount_must_be_non_zero")
)

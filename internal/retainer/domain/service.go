package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DepositRequest struct {
	CaseID string          `json:"case_id"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

type DeductRequest struct {
	CaseID    string          `json:"case_id"`
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *RetainerEntry) error
	ListByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]RetainerEntry, error)
	// ClearInvoiceRefs nulls invoice_id on every entry referencing the
	// invoice. Runs when an invoice is removed.
	ClearInvoiceRefs(ctx context.Context, orgID snowflake.ID, invoiceID snowflake.ID) error
}

type Service interface {
	// Deposit records client funds received. Amount must be positive.
	Deposit(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req DepositRequest) (*RetainerEntry, error)
	// Deduct applies held funds to an invoice. The entry is stored with a
	// negative amount and the invoice's total_paid grows by the same amount
	// in one transaction, so the credit is never counted a second time at
	// balance computation.
	Deduct(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req DeductRequest) (*RetainerEntry, error)
	ListByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]RetainerEntry, error)
	// Balance is the sum of the case's signed entries, recomputed on demand.
	Balance(ctx context.Context, orgID snowflake.ID, caseID string) (decimal.Decimal, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidCase         = errors.New("invalid_case")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidID           = errors.New("invalid_id")

	// ErrZeroAmount tells the caller what to do instead of recording nothing.
	ErrZeroAmount = errors.New("retainer amount must be non-zero: record a deposit or a deduction, not an empty movement")

	// ErrMissingInvoice rejects deductions that do not say which invoice they
	// offset.
	ErrMissingInvoice = errors.New("deduction_requires_invoice")
)

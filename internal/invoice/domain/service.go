package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateRequest struct {
	CaseID        string          `json:"case_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Total         decimal.Decimal `json:"total"`
}

// InvoiceResponse is an invoice plus its derived balance.
type InvoiceResponse struct {
	Invoice
	Balance decimal.Decimal `json:"balance"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, invoice *Invoice) error
	Update(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*Invoice, error)
	ListByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]Invoice, error)
	SoftDelete(ctx context.Context, orgID snowflake.ID, id snowflake.ID) error
}

type Service interface {
	Create(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req CreateRequest) (*InvoiceResponse, error)
	Get(ctx context.Context, orgID snowflake.ID, id string) (*InvoiceResponse, error)
	ListByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]InvoiceResponse, error)
	// ApplyPayment adds a direct payment to TotalPaid.
	ApplyPayment(ctx context.Context, orgID snowflake.ID, id string, amount decimal.Decimal) (*InvoiceResponse, error)
	// Delete removes the invoice and nulls any retainer entry references to
	// it. The retainer rows themselves survive; financial history is never
	// cascaded away.
	Delete(ctx context.Context, orgID snowflake.ID, id string) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidCase         = errors.New("invalid_case")
	ErrInvalidNumber       = errors.New("invalid_invoice_number")
	ErrInvalidTotal        = errors.New("invalid_total")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)

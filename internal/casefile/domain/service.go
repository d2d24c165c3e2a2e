package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateRequest struct {
	ReferenceNumber string          `json:"reference_number"`
	Title           string          `json:"title"`
	Status          string          `json:"status"`
	BudgetHours     decimal.Decimal `json:"budget_hours"`
	BudgetDollars   decimal.Decimal `json:"budget_dollars"`
}

type UpdateRequest struct {
	ID            string           `json:"id"`
	Title         *string          `json:"title,omitempty"`
	Status        *string          `json:"status,omitempty"`
	BudgetHours   *decimal.Decimal `json:"budget_hours,omitempty"`
	BudgetDollars *decimal.Decimal `json:"budget_dollars,omitempty"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, c *Case) error
	Update(ctx context.Context, c *Case) error
	FindByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*Case, error)
	ListByOrg(ctx context.Context, orgID snowflake.ID) ([]Case, error)
	SoftDelete(ctx context.Context, orgID snowflake.ID, id snowflake.ID) error
}

type Service interface {
	Create(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req CreateRequest) (*Case, error)
	Get(ctx context.Context, orgID snowflake.ID, id string) (*Case, error)
	List(ctx context.Context, orgID snowflake.ID) ([]Case, error)
	Update(ctx context.Context, orgID snowflake.ID, req UpdateRequest) (*Case, error)
	Delete(ctx context.Context, orgID snowflake.ID, id string) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidReference    = errors.New("invalid_reference_number")
	ErrInvalidTitle        = errors.New("invalid_title")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidBudget       = errors.New("invalid_budget")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)

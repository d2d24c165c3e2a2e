package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateRequest struct {
	CaseID           string          `json:"case_id"`
	Title            string          `json:"title"`
	UpdateType       string          `json:"update_type"`
	Body             string          `json:"body"`
	ActivityTimeline []ActivityEntry `json:"activity_timeline"`
}

type EditRequest struct {
	ID               string           `json:"id"`
	Title            *string          `json:"title,omitempty"`
	Body             *string          `json:"body,omitempty"`
	ActivityTimeline *[]ActivityEntry `json:"activity_timeline,omitempty"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, update *CaseUpdate) error
	Update(ctx context.Context, update *CaseUpdate) error
	FindByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*CaseUpdate, error)
	ListByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]CaseUpdate, error)
}

type Service interface {
	Create(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req CreateRequest) (*CaseUpdate, error)
	Edit(ctx context.Context, orgID snowflake.ID, req EditRequest) (*CaseUpdate, error)
	ListByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]CaseUpdate, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidCase         = errors.New("invalid_case")
	ErrInvalidTitle        = errors.New("invalid_title")
	ErrInvalidUpdateType   = errors.New("invalid_update_type")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")

	// ErrImmutableLegacyUpdate guards synthesized legacy billing updates
	// against mutation.
	ErrImmutableLegacyUpdate = errors.New("legacy_billing_update_immutable")
)

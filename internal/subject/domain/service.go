package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateRequest struct {
	CaseID      string `json:"case_id"`
	Name        string `json:"name"`
	SubjectType string `json:"subject_type"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, subject *Subject) error
	FindByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*Subject, error)
	ListByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]Subject, error)
	SoftDelete(ctx context.Context, orgID snowflake.ID, id snowflake.ID) error
}

type Service interface {
	Create(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req CreateRequest) (*Subject, error)
	Get(ctx context.Context, orgID snowflake.ID, id string) (*Subject, error)
	ListByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]Subject, error)
	Delete(ctx context.Context, orgID snowflake.ID, id string) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidCase         = errors.New("invalid_case")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidSubjectType  = errors.New("invalid_subject_type")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)

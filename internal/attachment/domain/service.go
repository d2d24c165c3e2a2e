package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateRequest struct {
	SubjectID   string `json:"subject_id"`
	FileName    string `json:"file_name"`
	ContentHash string `json:"content_hash"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, attachment *Attachment) error
	FindByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*Attachment, error)
	FindByCaseHash(ctx context.Context, caseID snowflake.ID, hash string) (*Attachment, error)
	ListByOrgHash(ctx context.Context, orgID snowflake.ID, hash string) ([]Attachment, error)
	ListBySubject(ctx context.Context, orgID snowflake.ID, subjectID snowflake.ID) ([]Attachment, error)
}

type Service interface {
	// Create records attachment metadata. A duplicate content hash within the
	// same case is rejected; duplicates elsewhere in the organization are
	// reported alongside the new record.
	Create(ctx context.Context, orgID snowflake.ID, uploadedBy snowflake.ID, req CreateRequest) (*Attachment, []Attachment, error)
	Get(ctx context.Context, orgID snowflake.ID, id string) (*Attachment, error)
	ListBySubject(ctx context.Context, orgID snowflake.ID, subjectID string) ([]Attachment, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidSubject      = errors.New("invalid_subject")
	ErrInvalidFileName     = errors.New("invalid_file_name")
	ErrInvalidContentHash  = errors.New("invalid_content_hash")
	ErrInvalidID           = errors.New("invalid_id")
	ErrDuplicateInCase     = errors.New("duplicate_attachment_in_case")
	ErrNotFound            = errors.New("not_found")
)

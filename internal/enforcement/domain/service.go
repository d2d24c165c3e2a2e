package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/pkg/db/pagination"
	"gorm.io/gorm"
)

// Entry is the caller-facing shape of a decision to record.
type Entry struct {
	OrgID           snowflake.ID
	CaseID          *snowflake.ID
	UserID          *snowflake.ID
	ActionType      string
	EnforcementType string
	WasBlocked      bool
	Reason          string
	Context         map[string]any
}

type ListRequest struct {
	pagination.Pagination
	ActionType      string
	EnforcementType string
	WasBlocked      *bool
	StartAt         *time.Time
	EndAt           *time.Time
}

type ListResponse struct {
	pagination.PageInfo
	Actions []EnforcementAction `json:"actions"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, action *EnforcementAction) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*EnforcementAction, error)
}

type Service interface {
	// Record appends one decision. The write is retried once on failure and
	// then treated as best-effort-lost; it never fails the decision that
	// produced it. The returned error reports the final outcome for callers
	// that want to know.
	Record(ctx context.Context, entry Entry) (snowflake.ID, error)
	// List supports compliance review filtered by organization and time range.
	List(ctx context.Context, orgID snowflake.ID, req ListRequest) (ListResponse, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidActionType   = errors.New("invalid_action_type")
	ErrInvalidTimeRange    = errors.New("invalid_time_range")
	ErrInvalidPageToken    = errors.New("invalid_page_token")
)

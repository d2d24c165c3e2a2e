package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Value is the caller-facing projection of a registry entry.
type Value struct {
	Value      string  `json:"value"`
	Active     bool    `json:"active"`
	SortOrder  int     `json:"sort_order"`
	StatusType *string `json:"status_type,omitempty"`
}

// LegacyFixture is one predecessor fixed-enum value to copy per organization.
type LegacyFixture struct {
	Value         string
	StatusType    *string
	SortOrder     int
	CreatorUserID *snowflake.ID
}

type CreateRequest struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Active     *bool   `json:"active"`
	SortOrder  int     `json:"sort_order"`
	StatusType *string `json:"status_type"`
}

type UpdateRequest struct {
	ID         string  `json:"id"`
	Active     *bool   `json:"active,omitempty"`
	SortOrder  *int    `json:"sort_order,omitempty"`
	StatusType *string `json:"status_type,omitempty"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *PicklistEntry) error
	Update(ctx context.Context, entry *PicklistEntry) error
	FindByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*PicklistEntry, error)
	ListByType(ctx context.Context, orgID snowflake.ID, entryType string) ([]PicklistEntry, error)
	CountByType(ctx context.Context, orgID snowflake.ID, entryType string) (int64, error)
	// AnyOwnerInOrg returns the creator of any existing entry in the org.
	AnyOwnerInOrg(ctx context.Context, orgID snowflake.ID) (*snowflake.ID, error)
	// AnyProfile returns an arbitrary profile id from the system.
	AnyProfile(ctx context.Context) (*snowflake.ID, error)
	ListOrganizationIDs(ctx context.Context) ([]snowflake.ID, error)
}

type Service interface {
	// ValuesFor enumerates the registry values for one type, ordered and
	// finite.
	ValuesFor(ctx context.Context, orgID snowflake.ID, entryType string) ([]Value, error)
	// Contains reports whether value is an active registry value.
	Contains(ctx context.Context, orgID snowflake.ID, entryType, value string) (bool, error)
	Create(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req CreateRequest) (*PicklistEntry, error)
	Update(ctx context.Context, orgID snowflake.ID, req UpdateRequest) (*PicklistEntry, error)
	// MigrateLegacy copies predecessor fixed-enum values into every
	// organization's registry once. Owner assignment falls back from the
	// original creator to any picklist owner in the org to any profile.
	MigrateLegacy(ctx context.Context, entryType string, fixtures []LegacyFixture) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidType         = errors.New("invalid_type")
	ErrInvalidValue        = errors.New("invalid_value")
	ErrInvalidStatusType   = errors.New("invalid_status_type")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)

package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Feature keys gating platform operations.
const (
	FeatureCaseView   = "case.view"
	FeatureCaseCreate = "case.create"
	FeatureCaseUpdate = "case.update"
	FeatureCaseDelete = "case.delete"

	FeatureBillingView   = "billing.view"
	FeatureBillingManage = "billing.manage"

	FeatureInvoiceView   = "invoice.view"
	FeatureInvoiceManage = "invoice.manage"

	FeatureRetainerView   = "retainer.view"
	FeatureRetainerManage = "retainer.manage"

	FeatureUpdateCreate = "update.create"
	FeatureUpdateEdit   = "update.edit"

	FeatureSubjectManage    = "subject.manage"
	FeatureAttachmentManage = "attachment.manage"

	FeaturePicklistManage   = "picklist.manage"
	FeatureSettingsManage   = "settings.manage"
	FeaturePermissionManage = "permission.manage"
	FeatureEnforcementView  = "enforcement.view"
)

// Grant is one seedable capability matrix cell.
type Grant struct {
	Role       string
	FeatureKey string
	Allowed    bool
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// Upsert writes a rule keyed by (org_id, role, feature_key); re-applying
	// the same grant updates in place and never duplicates.
	Upsert(ctx context.Context, orgID *snowflake.ID, grant Grant) error
	ListDefaults(ctx context.Context) ([]PermissionRule, error)
	ListOverrides(ctx context.Context, orgID snowflake.ID) ([]PermissionRule, error)
}

type Service interface {
	// Can resolves the merged matrix for the organization and evaluates the
	// grant fail-closed.
	Can(ctx context.Context, orgID snowflake.ID, role string, featureKey string) (bool, error)
	// SnapshotForOrg merges platform defaults with the organization's
	// overrides into an immutable matrix.
	SnapshotForOrg(ctx context.Context, orgID snowflake.ID) (Matrix, error)
	// SeedDefaults idempotently applies the default capability matrix.
	SeedDefaults(ctx context.Context, grants []Grant) error
	SetOverride(ctx context.Context, orgID snowflake.ID, grant Grant) error
	ListRules(ctx context.Context, orgID snowflake.ID) ([]PermissionRule, error)
}

var (
	ErrInvalidRole         = errors.New("invalid_role")
	ErrInvalidFeatureKey   = errors.New("invalid_feature_key")
	ErrInvalidOrganization = errors.New("invalid_organization")
)

package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/capability/domain"
	"github.com/casetrail/casetrail/internal/capability/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.PermissionRule{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.NewRepository(db, node),
	})
	return svc, db, node
}

func TestCan_FailClosedForUnknownFeature(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx, domain.DefaultGrants))

	orgID := node.Generate()
	allowed, err := svc.Can(ctx, orgID, "owner", "nonexistent.feature")
	assert.NoError(t, err)
	assert.False(t, allowed, "absent rule must deny")

	allowed, err = svc.Can(ctx, orgID, "made_up_role", domain.FeatureCaseView)
	assert.NoError(t, err)
	assert.False(t, allowed, "unknown role must deny")
}

func TestSeedDefaults_Idempotent(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx, domain.DefaultGrants))
	require.NoError(t, svc.SeedDefaults(ctx, domain.DefaultGrants))

	var count int64
	db.Model(&domain.PermissionRule{}).Count(&count)
	assert.Equal(t, int64(len(domain.DefaultGrants)), count, "re-seeding must not duplicate rules")
}

func TestSetOverride_LastWriteWins(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx, domain.DefaultGrants))
	orgID := node.Generate()

	// vendor has no invoice.view by default
	allowed, err := svc.Can(ctx, orgID, "vendor", domain.FeatureInvoiceView)
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, svc.SetOverride(ctx, orgID, domain.Grant{
		Role: "vendor", FeatureKey: domain.FeatureInvoiceView, Allowed: true,
	}))
	allowed, err = svc.Can(ctx, orgID, "vendor", domain.FeatureInvoiceView)
	require.NoError(t, err)
	assert.True(t, allowed)

	// flip it back; last write wins
	require.NoError(t, svc.SetOverride(ctx, orgID, domain.Grant{
		Role: "vendor", FeatureKey: domain.FeatureInvoiceView, Allowed: false,
	}))
	allowed, err = svc.Can(ctx, orgID, "vendor", domain.FeatureInvoiceView)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestSetOverride_ScopedToOrganization(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx, domain.DefaultGrants))
	orgA := node.Generate()
	orgB := node.Generate()

	require.NoError(t, svc.SetOverride(ctx, orgA, domain.Grant{
		Role: "vendor", FeatureKey: domain.FeatureBillingView, Allowed: true,
	}))

	allowed, err := svc.Can(ctx, orgA, "vendor", domain.FeatureBillingView)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Can(ctx, orgB, "vendor", domain.FeatureBillingView)
	require.NoError(t, err)
	assert.False(t, allowed, "override must not leak into other tenants")
}

func TestMerge_Pure(t *testing.T) {
	defaults := domain.NewMatrix(1, []domain.PermissionRule{
		{Role: "admin", FeatureKey: "case.view", Allowed: true},
		{Role: "admin", FeatureKey: "case.delete", Allowed: true},
	})
	overrides := domain.NewMatrix(2, []domain.PermissionRule{
		{Role: "admin", FeatureKey: "case.delete", Allowed: false},
	})

	merged := domain.Merge(defaults, overrides)
	assert.True(t, merged.Can("admin", "case.view"))
	assert.False(t, merged.Can("admin", "case.delete"))
	assert.Equal(t, int64(2), merged.Version)

	// inputs untouched
	assert.True(t, defaults.Can("admin", "case.delete"))
}

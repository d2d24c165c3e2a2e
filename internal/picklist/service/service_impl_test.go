package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	orgdomain "github.com/casetrail/casetrail/internal/organization/domain"
	"github.com/casetrail/casetrail/internal/picklist/domain"
	"github.com/casetrail/casetrail/internal/picklist/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.PicklistEntry{},
		&orgdomain.Organization{},
		&orgdomain.Profile{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.NewRepository(db),
	})
	return svc, db, node
}

func seedOrg(t *testing.T, db *gorm.DB, node *snowflake.Node) snowflake.ID {
	t.Helper()
	orgID := node.Generate()
	require.NoError(t, db.Create(&orgdomain.Organization{
		ID:   orgID,
		Name: "Harbor Investigations",
		Slug: "harbor-investigations-" + orgID.String(),
	}).Error)
	return orgID
}

func TestValuesFor_OrderedAndScoped(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := seedOrg(t, db, node)

	for i, value := range []string{"surveillance", "interview", "background"} {
		_, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
			Type:      domain.TypeUpdateType,
			Value:     value,
			SortOrder: 10 - i,
		})
		require.NoError(t, err)
	}

	values, err := svc.ValuesFor(ctx, orgID, domain.TypeUpdateType)
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, "background", values[0].Value)
	assert.Equal(t, "surveillance", values[2].Value)

	otherOrg := seedOrg(t, db, node)
	values, err = svc.ValuesFor(ctx, otherOrg, domain.TypeUpdateType)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestCreate_CaseStatusRequiresStatusType(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := seedOrg(t, db, node)

	_, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		Type:  domain.TypeCaseStatus,
		Value: "active",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusType)

	_, err = svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		Type:       domain.TypeCaseStatus,
		Value:      "active",
		StatusType: strPtr("pending"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusType)

	entry, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		Type:       domain.TypeCaseStatus,
		Value:      "active",
		StatusType: strPtr(domain.StatusTypeOpen),
	})
	require.NoError(t, err)
	require.NotNil(t, entry.StatusType)
	assert.Equal(t, domain.StatusTypeOpen, *entry.StatusType)
}

func TestCreate_RejectsStatusTypeOnOtherTypes(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := seedOrg(t, db, node)

	_, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		Type:       domain.TypeSubjectType,
		Value:      "person",
		StatusType: strPtr(domain.StatusTypeOpen),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusType)
}

func TestMigrateLegacy_IdempotentPerOrg(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := seedOrg(t, db, node)

	profileID := node.Generate()
	require.NoError(t, db.Create(&orgdomain.Profile{
		ID: profileID, DisplayName: "First User", Email: "first@example.com",
	}).Error)

	fixtures := []domain.LegacyFixture{
		{Value: "active", StatusType: strPtr(domain.StatusTypeOpen), SortOrder: 1},
		{Value: "closed", StatusType: strPtr(domain.StatusTypeClosed), SortOrder: 2},
	}

	require.NoError(t, svc.MigrateLegacy(ctx, domain.TypeCaseStatus, fixtures))
	require.NoError(t, svc.MigrateLegacy(ctx, domain.TypeCaseStatus, fixtures))

	var count int64
	db.Model(&domain.PicklistEntry{}).Where("org_id = ?", orgID).Count(&count)
	assert.Equal(t, int64(2), count, "second run must be a no-op")
}

func TestMigrateLegacy_OwnerFallbackChain(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := seedOrg(t, db, node)

	profileID := node.Generate()
	require.NoError(t, db.Create(&orgdomain.Profile{
		ID: profileID, DisplayName: "Fallback Owner", Email: "owner@example.com",
	}).Error)

	creator := node.Generate()
	fixtures := []domain.LegacyFixture{
		{Value: "with-creator", CreatorUserID: &creator, SortOrder: 1},
		{Value: "without-creator", SortOrder: 2},
	}

	require.NoError(t, svc.MigrateLegacy(ctx, domain.TypeUpdateType, fixtures))

	var withCreator domain.PicklistEntry
	require.NoError(t, db.First(&withCreator, "org_id = ? AND value = ?", orgID, "with-creator").Error)
	require.NotNil(t, withCreator.CreatedBy)
	assert.Equal(t, creator, *withCreator.CreatedBy)

	// no creator known: second fixture inherits the first entry's owner in the
	// org, or failing that the arbitrary profile
	var withoutCreator domain.PicklistEntry
	require.NoError(t, db.First(&withoutCreator, "org_id = ? AND value = ?", orgID, "without-creator").Error)
	require.NotNil(t, withoutCreator.CreatedBy)
}

func TestMigrateLegacy_ProfileFallbackWhenNoOwners(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := seedOrg(t, db, node)

	profileID := node.Generate()
	require.NoError(t, db.Create(&orgdomain.Profile{
		ID: profileID, DisplayName: "Only Profile", Email: "only@example.com",
	}).Error)

	require.NoError(t, svc.MigrateLegacy(ctx, domain.TypeSubjectType, []domain.LegacyFixture{
		{Value: "person", SortOrder: 1},
	}))

	var entry domain.PicklistEntry
	require.NoError(t, db.First(&entry, "org_id = ? AND value = ?", orgID, "person").Error)
	require.NotNil(t, entry.CreatedBy)
	assert.Equal(t, profileID, *entry.CreatedBy)
}

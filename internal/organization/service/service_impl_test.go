package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/organization/domain"
	"github.com/casetrail/casetrail/internal/organization/repository"
	"github.com/casetrail/casetrail/internal/plan"
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
	require.NoError(t, db.AutoMigrate(
		&domain.Organization{},
		&domain.OrganizationMember{},
		&domain.GlobalAdminGrant{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(db, zap.NewNop(), repository.NewRepository(db), node)
	return svc, db, node
}

func TestProvisionSignup_CreatesOrgOwnerAndGrant(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	userID := node.Generate()

	resp, err := svc.ProvisionSignup(ctx, userID, domain.ProvisionRequest{Name: "Hartley & Sons"})
	require.NoError(t, err)
	assert.Equal(t, "Hartley & Sons", resp.Name)
	assert.Equal(t, "hartley-and-sons", resp.Slug)
	assert.Equal(t, string(plan.KeyBasic), resp.PlanKey)

	orgID, err := snowflake.ParseString(resp.ID)
	require.NoError(t, err)

	var member domain.OrganizationMember
	require.NoError(t, db.Where("org_id = ? AND user_id = ?", orgID, userID).First(&member).Error)
	assert.Equal(t, domain.RoleOwner, member.Role)

	var grants int64
	require.NoError(t, db.Model(&domain.GlobalAdminGrant{}).Where("user_id = ?", userID).Count(&grants).Error)
	assert.EqualValues(t, 1, grants)
}

func TestProvisionSignup_RejectsBlankName(t *testing.T) {
	svc, _, node := newTestService(t)

	_, err := svc.ProvisionSignup(context.Background(), node.Generate(), domain.ProvisionRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestResolveMembership_UnknownUser(t *testing.T) {
	svc, _, node := newTestService(t)

	_, err := svc.ResolveMembership(context.Background(), node.Generate())
	assert.ErrorIs(t, err, domain.ErrNotAMember)
}

func TestApplyCheckoutProduct_KnownAndUnknownProducts(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	resp, err := svc.ProvisionSignup(ctx, node.Generate(), domain.ProvisionRequest{Name: "Hartley & Sons"})
	require.NoError(t, err)
	orgID, err := snowflake.ParseString(resp.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ApplyCheckoutProduct(ctx, orgID, "prod_agency_monthly"))
	var org domain.Organization
	require.NoError(t, db.First(&org, "id = ?", orgID).Error)
	assert.Equal(t, string(plan.KeyAgency), org.PlanKey)

	// Unrecognized products settle on the lowest tier rather than failing the
	// webhook.
	require.NoError(t, svc.ApplyCheckoutProduct(ctx, orgID, "prod_mystery_deal"))
	require.NoError(t, db.First(&org, "id = ?", orgID).Error)
	assert.Equal(t, string(plan.KeyBasic), org.PlanKey)
}

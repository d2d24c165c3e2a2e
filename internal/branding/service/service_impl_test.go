package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/branding/domain"
	"github.com/casetrail/casetrail/internal/branding/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.OrganizationSettings{}, &domain.CaseRequestForm{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.NewRepository(db),
	})
	return svc, node
}

func strptr(s string) *string { return &s }

func TestUpdateSettings_UpsertsAndPatches(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()

	settings, err := svc.UpdateSettings(ctx, orgID, domain.UpdateSettingsRequest{
		CompanyName:  strptr("  Meridian Group  "),
		ContactEmail: strptr("ops@meridian.example"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Meridian Group", settings.CompanyName)

	settings, err = svc.UpdateSettings(ctx, orgID, domain.UpdateSettingsRequest{
		LogoURL: strptr("https://cdn.example/logo.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Meridian Group", settings.CompanyName, "untouched fields survive partial updates")
	assert.Equal(t, "https://cdn.example/logo.png", settings.LogoURL)
}

func TestPublicBranding_RequiresActivePublicForm(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()

	_, err := svc.UpdateSettings(ctx, orgID, domain.UpdateSettingsRequest{
		CompanyName: strptr("Meridian Group"),
		LogoURL:     strptr("https://cdn.example/logo.png"),
	})
	require.NoError(t, err)

	_, err = svc.PublicBranding(ctx, orgID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "no intake form means no public surface")

	_, err = svc.CreateForm(ctx, orgID, domain.CreateFormRequest{Name: "Intake", Active: true, Public: false})
	require.NoError(t, err)
	_, err = svc.PublicBranding(ctx, orgID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "a private form does not open the surface")

	_, err = svc.CreateForm(ctx, orgID, domain.CreateFormRequest{Name: "Public Intake", Active: true, Public: true})
	require.NoError(t, err)

	branding, err := svc.PublicBranding(ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, "Meridian Group", branding.CompanyName)
	assert.Equal(t, "https://cdn.example/logo.png", branding.LogoURL)
}

func TestPublicBranding_NeverLeaksContactDetails(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()

	_, err := svc.UpdateSettings(ctx, orgID, domain.UpdateSettingsRequest{
		CompanyName:  strptr("Meridian Group"),
		ContactEmail: strptr("ops@meridian.example"),
		ContactPhone: strptr("+1-555-0100"),
		BillingNotes: strptr("net 30"),
	})
	require.NoError(t, err)
	_, err = svc.CreateForm(ctx, orgID, domain.CreateFormRequest{Name: "Intake", Active: true, Public: true})
	require.NoError(t, err)

	branding, err := svc.PublicBranding(ctx, orgID)
	require.NoError(t, err)
	// The projection carries exactly the four display fields; the struct has
	// nowhere to put contact or billing data.
	assert.Equal(t, domain.PublicBranding{
		CompanyName: "Meridian Group",
	}, *branding)
}

func TestCreateForm_RejectsBlankName(t *testing.T) {
	svc, node := newTestService(t)

	_, err := svc.CreateForm(context.Background(), node.Generate(), domain.CreateFormRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestPublicBranding_ZeroOrgNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.PublicBranding(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

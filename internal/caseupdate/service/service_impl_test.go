package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/caseupdate/domain"
	"github.com/casetrail/casetrail/internal/caseupdate/repository"
	picklistdomain "github.com/casetrail/casetrail/internal/picklist/domain"
	picklistrepo "github.com/casetrail/casetrail/internal/picklist/repository"
	picklistsvc "github.com/casetrail/casetrail/internal/picklist/service"
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
	require.NoError(t, db.AutoMigrate(&picklistdomain.PicklistEntry{}, &domain.CaseUpdate{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	picklists := picklistsvc.NewService(picklistsvc.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Repo:  picklistrepo.NewRepository(db),
	})

	svc := NewService(Params{
		DB:        db,
		Log:       log,
		GenID:     node,
		Repo:      repository.NewRepository(db),
		Picklists: picklists,
	})
	return svc, db, node
}

func seedUpdateType(t *testing.T, db *gorm.DB, node *snowflake.Node, orgID snowflake.ID, value string) {
	t.Helper()
	require.NoError(t, db.Create(&picklistdomain.PicklistEntry{
		ID:     node.Generate(),
		OrgID:  orgID,
		Type:   picklistdomain.TypeUpdateType,
		Value:  value,
		Active: true,
	}).Error)
}

func strptr(s string) *string { return &s }

func TestCreate_UpdateTypeMustBeRegistered(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	seedUpdateType(t, db, node, orgID, "field_note")

	update, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		CaseID:     node.Generate().String(),
		Title:      "site visit",
		UpdateType: "field_note",
	})
	require.NoError(t, err)
	assert.Equal(t, "field_note", update.UpdateType)

	_, err = svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		CaseID:     node.Generate().String(),
		Title:      "site visit",
		UpdateType: "interpretive_dance",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidUpdateType)
}

func TestEdit_LegacyBillingUpdateImmutable(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()

	update := &domain.CaseUpdate{
		ID:              node.Generate(),
		OrgID:           orgID,
		CaseID:          node.Generate(),
		Title:           "Legacy Billing Entry",
		UpdateType:      "legacy_billing",
		IsLegacyBilling: true,
	}
	require.NoError(t, db.Create(update).Error)

	_, err := svc.Edit(ctx, orgID, domain.EditRequest{
		ID:    update.ID.String(),
		Title: strptr("rewritten history"),
	})
	assert.ErrorIs(t, err, domain.ErrImmutableLegacyUpdate)

	var stored domain.CaseUpdate
	require.NoError(t, db.First(&stored, "id = ?", update.ID).Error)
	assert.Equal(t, "Legacy Billing Entry", stored.Title)
}

func TestEdit_RegularUpdateMutable(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	seedUpdateType(t, db, node, orgID, "field_note")

	update, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		CaseID:     node.Generate().String(),
		Title:      "draft",
		UpdateType: "field_note",
	})
	require.NoError(t, err)

	edited, err := svc.Edit(ctx, orgID, domain.EditRequest{
		ID:    update.ID.String(),
		Title: strptr("final"),
	})
	require.NoError(t, err)
	assert.Equal(t, "final", edited.Title)
}

package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/casefile/domain"
	"github.com/casetrail/casetrail/internal/casefile/repository"
	picklistdomain "github.com/casetrail/casetrail/internal/picklist/domain"
	picklistrepo "github.com/casetrail/casetrail/internal/picklist/repository"
	picklistsvc "github.com/casetrail/casetrail/internal/picklist/service"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&picklistdomain.PicklistEntry{}, &domain.Case{}))

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

func seedStatus(t *testing.T, db *gorm.DB, node *snowflake.Node, orgID snowflake.ID, value, statusType string) {
	t.Helper()
	require.NoError(t, db.Create(&picklistdomain.PicklistEntry{
		ID:         node.Generate(),
		OrgID:      orgID,
		Type:       picklistdomain.TypeCaseStatus,
		Value:      value,
		Active:     true,
		StatusType: &statusType,
	}).Error)
}

func strptr(s string) *string { return &s }

func TestCreate_StatusMustBeRegistered(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	seedStatus(t, db, node, orgID, "open", "open")

	c, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		ReferenceNumber: "REF-100",
		Title:           "surveillance",
		Status:          "open",
	})
	require.NoError(t, err)
	assert.Equal(t, "open", c.Status)

	_, err = svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		ReferenceNumber: "REF-101",
		Title:           "surveillance",
		Status:          "simmering",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestCreate_StatusScopedToOrganization(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgA := node.Generate()
	orgB := node.Generate()
	seedStatus(t, db, node, orgA, "triage", "open")

	_, err := svc.Create(ctx, orgB, node.Generate(), domain.CreateRequest{
		ReferenceNumber: "REF-200",
		Title:           "background check",
		Status:          "triage",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus, "another org's registry values do not apply")
}

func TestCreate_RejectsNegativeBudget(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	seedStatus(t, db, node, orgID, "open", "open")

	_, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		ReferenceNumber: "REF-300",
		Title:           "surveillance",
		Status:          "open",
		BudgetDollars:   decimal.NewFromInt(-500),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidBudget)
}

func TestUpdate_StatusTransitionValidated(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	seedStatus(t, db, node, orgID, "open", "open")
	seedStatus(t, db, node, orgID, "closed", "closed")

	c, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		ReferenceNumber: "REF-400",
		Title:           "surveillance",
		Status:          "open",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, orgID, domain.UpdateRequest{
		ID:     c.ID.String(),
		Status: strptr("closed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "closed", updated.Status)

	_, err = svc.Update(ctx, orgID, domain.UpdateRequest{
		ID:     c.ID.String(),
		Status: strptr("archived"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	stored, err := svc.Get(ctx, orgID, c.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "closed", stored.Status, "rejected transition leaves the case untouched")
}

func TestUpdate_RejectsNegativeBudget(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	seedStatus(t, db, node, orgID, "open", "open")

	c, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		ReferenceNumber: "REF-500",
		Title:           "surveillance",
		Status:          "open",
	})
	require.NoError(t, err)

	negative := decimal.NewFromInt(-1)
	_, err = svc.Update(ctx, orgID, domain.UpdateRequest{
		ID:          c.ID.String(),
		BudgetHours: &negative,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidBudget)
}

package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	casedomain "github.com/casetrail/casetrail/internal/casefile/domain"
	caserepo "github.com/casetrail/casetrail/internal/casefile/repository"
	"github.com/casetrail/casetrail/internal/invoice/domain"
	"github.com/casetrail/casetrail/internal/invoice/repository"
	retainerdomain "github.com/casetrail/casetrail/internal/retainer/domain"
	retainerrepo "github.com/casetrail/casetrail/internal/retainer/repository"
	retainersvc "github.com/casetrail/casetrail/internal/retainer/service"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServices(t *testing.T) (domain.Service, retainerdomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&casedomain.Case{},
		&domain.Invoice{},
		&retainerdomain.RetainerEntry{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	invoices := repository.NewRepository(db)
	retainers := retainerrepo.NewRepository(db)

	invoiceSvc := NewService(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      invoices,
		Cases:     caserepo.NewRepository(db),
		Retainers: retainers,
	})
	retainerSvc := retainersvc.NewService(retainersvc.Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     retainers,
		Invoices: invoices,
	})
	return invoiceSvc, retainerSvc, db, node
}

func seedCase(t *testing.T, db *gorm.DB, node *snowflake.Node) *casedomain.Case {
	t.Helper()
	c := &casedomain.Case{
		ID:              node.Generate(),
		OrgID:           node.Generate(),
		ReferenceNumber: "REF-" + node.Generate().String(),
		Title:           "ledger case",
		Status:          "open",
		CreatedBy:       node.Generate(),
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

// An invoice fully covered by a direct payment plus a retainer deduction must
// balance to zero. The retainer credit lives in total_paid; subtracting it a
// second time would report a negative balance.
func TestBalance_RetainerCreditNotDoubleCounted(t *testing.T) {
	invoiceSvc, retainerSvc, db, node := newTestServices(t)
	ctx := context.Background()

	c := seedCase(t, db, node)
	userID := node.Generate()

	created, err := invoiceSvc.Create(ctx, c.OrgID, userID, domain.CreateRequest{
		CaseID:        c.ID.String(),
		InvoiceNumber: "INV-001",
		Total:         decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	_, err = retainerSvc.Deposit(ctx, c.OrgID, userID, retainerdomain.DepositRequest{
		CaseID: c.ID.String(),
		Amount: decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	_, err = invoiceSvc.ApplyPayment(ctx, c.OrgID, created.ID.String(), decimal.NewFromInt(300))
	require.NoError(t, err)

	_, err = retainerSvc.Deduct(ctx, c.OrgID, userID, retainerdomain.DeductRequest{
		CaseID:    c.ID.String(),
		InvoiceID: created.ID.String(),
		Amount:    decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	resp, err := invoiceSvc.Get(ctx, c.OrgID, created.ID.String())
	require.NoError(t, err)
	assert.True(t, resp.TotalPaid.Equal(decimal.NewFromInt(500)))
	assert.True(t, resp.Balance.IsZero(), "expected 0, got %s", resp.Balance)
}

func TestDelete_NullsRetainerReferences(t *testing.T) {
	invoiceSvc, retainerSvc, db, node := newTestServices(t)
	ctx := context.Background()

	c := seedCase(t, db, node)
	userID := node.Generate()

	created, err := invoiceSvc.Create(ctx, c.OrgID, userID, domain.CreateRequest{
		CaseID:        c.ID.String(),
		InvoiceNumber: "INV-002",
		Total:         decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = retainerSvc.Deposit(ctx, c.OrgID, userID, retainerdomain.DepositRequest{
		CaseID: c.ID.String(),
		Amount: decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	entry, err := retainerSvc.Deduct(ctx, c.OrgID, userID, retainerdomain.DeductRequest{
		CaseID:    c.ID.String(),
		InvoiceID: created.ID.String(),
		Amount:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	require.NoError(t, invoiceSvc.Delete(ctx, c.OrgID, created.ID.String()))

	// The entry survives with its amount; only the reference is gone.
	var reloaded retainerdomain.RetainerEntry
	require.NoError(t, db.First(&reloaded, "id = ?", entry.ID).Error)
	assert.Nil(t, reloaded.InvoiceID)
	assert.True(t, reloaded.Amount.Equal(decimal.NewFromInt(-100)))

	balance, err := retainerSvc.Balance(ctx, c.OrgID, c.ID.String())
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(50)))
}

func TestGet_BalanceRecomputedOnRead(t *testing.T) {
	invoiceSvc, _, db, node := newTestServices(t)
	ctx := context.Background()

	c := seedCase(t, db, node)
	created, err := invoiceSvc.Create(ctx, c.OrgID, node.Generate(), domain.CreateRequest{
		CaseID:        c.ID.String(),
		InvoiceNumber: "INV-003",
		Total:         decimal.NewFromInt(400),
	})
	require.NoError(t, err)
	assert.True(t, created.Balance.Equal(decimal.NewFromInt(400)))

	updated, err := invoiceSvc.ApplyPayment(ctx, c.OrgID, created.ID.String(), decimal.NewFromInt(150))
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(250)))
}

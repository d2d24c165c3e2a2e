package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/casetrail/casetrail/internal/invoice/domain"
	invoicerepo "github.com/casetrail/casetrail/internal/invoice/repository"
	"github.com/casetrail/casetrail/internal/retainer/domain"
	"github.com/casetrail/casetrail/internal/retainer/repository"
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
	require.NoError(t, db.AutoMigrate(
		&domain.RetainerEntry{},
		&invoicedomain.Invoice{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.NewRepository(db),
		Invoices: invoicerepo.NewRepository(db),
	})
	return svc, db, node
}

func TestDeposit_RejectsZeroAmount(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, node.Generate(), node.Generate(), domain.DepositRequest{
		CaseID: node.Generate().String(),
		Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrZeroAmount)
}

func TestDeduct_RequiresInvoiceReference(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := context.Background()

	_, err := svc.Deduct(ctx, node.Generate(), node.Generate(), domain.DeductRequest{
		CaseID: node.Generate().String(),
		Amount: decimal.NewFromInt(50),
	})
	assert.ErrorIs(t, err, domain.ErrMissingInvoice)
}

func TestDeduct_CreditsInvoiceInSameTransaction(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	orgID := node.Generate()
	caseID := node.Generate()
	userID := node.Generate()
	invoice := &invoicedomain.Invoice{
		ID:            node.Generate(),
		OrgID:         orgID,
		CaseID:        caseID,
		InvoiceNumber: "INV-010",
		Status:        "draft",
		Total:         decimal.NewFromInt(300),
		TotalPaid:     decimal.Zero,
		CreatedBy:     userID,
	}
	require.NoError(t, db.Create(invoice).Error)

	_, err := svc.Deposit(ctx, orgID, userID, domain.DepositRequest{
		CaseID: caseID.String(),
		Amount: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	entry, err := svc.Deduct(ctx, orgID, userID, domain.DeductRequest{
		CaseID:    caseID.String(),
		InvoiceID: invoice.ID.String(),
		Amount:    decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(-120)), "deductions are stored negative")

	var reloaded invoicedomain.Invoice
	require.NoError(t, db.First(&reloaded, "id = ?", invoice.ID).Error)
	assert.True(t, reloaded.TotalPaid.Equal(decimal.NewFromInt(120)))

	balance, err := svc.Balance(ctx, orgID, caseID.String())
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(180)))
}

func TestDeduct_UnknownInvoiceRollsBack(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	orgID := node.Generate()
	caseID := node.Generate()

	_, err := svc.Deduct(ctx, orgID, node.Generate(), domain.DeductRequest{
		CaseID:    caseID.String(),
		InvoiceID: node.Generate().String(),
		Amount:    decimal.NewFromInt(10),
	})
	require.Error(t, err)

	var count int64
	db.Model(&domain.RetainerEntry{}).Count(&count)
	assert.Zero(t, count, "no ledger entry without a matching invoice")
}

func TestBalance_SumsSignedEntries(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := context.Background()

	orgID := node.Generate()
	caseID := node.Generate()
	userID := node.Generate()

	for _, amount := range []int64{500, 250} {
		_, err := svc.Deposit(ctx, orgID, userID, domain.DepositRequest{
			CaseID: caseID.String(),
			Amount: decimal.NewFromInt(amount),
		})
		require.NoError(t, err)
	}

	balance, err := svc.Balance(ctx, orgID, caseID.String())
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(750)))
}

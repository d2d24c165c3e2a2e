package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/casetrail/casetrail/internal/invoice/domain"
	"github.com/casetrail/casetrail/internal/retainer/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Invoices invoicedomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	invoices invoicedomain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("retainer.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		invoices: p.Invoices,
	}
}

func (s *Service) Deposit(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req domain.DepositRequest) (*domain.RetainerEntry, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	caseID, err := snowflake.ParseString(strings.TrimSpace(req.CaseID))
	if err != nil || caseID == 0 {
		return nil, domain.ErrInvalidCase
	}
	if req.Amount.IsZero() {
		return nil, domain.ErrZeroAmount
	}
	if req.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	entry := &domain.RetainerEntry{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		CaseID:    caseID,
		EntryType: domain.EntryTypeDeposit,
		Amount:    req.Amount,
		Note:      strings.TrimSpace(req.Note),
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Deduct(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req domain.DeductRequest) (*domain.RetainerEntry, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	caseID, err := snowflake.ParseString(strings.TrimSpace(req.CaseID))
	if err != nil || caseID == 0 {
		return nil, domain.ErrInvalidCase
	}
	if strings.TrimSpace(req.InvoiceID) == "" {
		return nil, domain.ErrMissingInvoice
	}
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(req.InvoiceID))
	if err != nil || invoiceID == 0 {
		return nil, domain.ErrMissingInvoice
	}
	if req.Amount.IsZero() {
		return nil, domain.ErrZeroAmount
	}
	if req.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	entry := &domain.RetainerEntry{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		CaseID:    caseID,
		EntryType: domain.EntryTypeDeduction,
		Amount:    req.Amount.Neg(),
		InvoiceID: &invoiceID,
		Note:      strings.TrimSpace(req.Note),
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}

	// The ledger entry and the invoice credit land together. TotalPaid is
	// where the credit lives from here on; balance readers subtract nothing
	// else.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoices := s.invoices.WithTx(tx)
		invoice, err := invoices.FindByID(ctx, orgID, invoiceID)
		if err != nil {
			return err
		}
		invoice.TotalPaid = invoice.TotalPaid.Add(req.Amount)
		invoice.UpdatedAt = time.Now().UTC()
		if err := invoices.Update(ctx, invoice); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) ListByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]domain.RetainerEntry, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(caseID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidCase
	}
	return s.repo.ListByCase(ctx, orgID, id)
}

func (s *Service) Balance(ctx context.Context, orgID snowflake.ID, caseID string) (decimal.Decimal, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(caseID))
	if err != nil || id == 0 {
		return decimal.Zero, domain.ErrInvalidCase
	}
	entries, err := s.repo.ListByCase(ctx, orgID, id)
	if err != nil {
		return decimal.Zero, err
	}
	balance := decimal.Zero
	for _, entry := range entries {
		balance = balance.Add(entry.Amount)
	}
	return balance, nil
}

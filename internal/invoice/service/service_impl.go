package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	casedomain "github.com/casetrail/casetrail/internal/casefile/domain"
	"github.com/casetrail/casetrail/internal/invoice/domain"
	retainerdomain "github.com/casetrail/casetrail/internal/retainer/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Cases     casedomain.Repository
	Retainers retainerdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	cases     casedomain.Repository
	retainers retainerdomain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		cases:     p.Cases,
		retainers: p.Retainers,
	}
}

func (s *Service) Create(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req domain.CreateRequest) (*domain.InvoiceResponse, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	caseID, err := snowflake.ParseString(strings.TrimSpace(req.CaseID))
	if err != nil || caseID == 0 {
		return nil, domain.ErrInvalidCase
	}
	if _, err := s.cases.FindByID(ctx, orgID, caseID); err != nil {
		return nil, domain.ErrInvalidCase
	}
	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		return nil, domain.ErrInvalidNumber
	}
	if req.Total.IsNegative() {
		return nil, domain.ErrInvalidTotal
	}

	now := time.Now().UTC()
	invoice := &domain.Invoice{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		CaseID:        caseID,
		InvoiceNumber: number,
		Status:        "draft",
		Total:         req.Total,
		TotalPaid:     decimal.Zero,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return respond(invoice), nil
}

func (s *Service) Get(ctx context.Context, orgID snowflake.ID, id string) (*domain.InvoiceResponse, error) {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || invoiceID == 0 {
		return nil, domain.ErrInvalidID
	}
	invoice, err := s.repo.FindByID(ctx, orgID, invoiceID)
	if err != nil {
		return nil, err
	}
	return respond(invoice), nil
}

func (s *Service) ListByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]domain.InvoiceResponse, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(caseID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidCase
	}
	invoices, err := s.repo.ListByCase(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	responses := make([]domain.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, *respond(&invoices[i]))
	}
	return responses, nil
}

func (s *Service) ApplyPayment(ctx context.Context, orgID snowflake.ID, id string, amount decimal.Decimal) (*domain.InvoiceResponse, error) {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || invoiceID == 0 {
		return nil, domain.ErrInvalidID
	}
	if amount.IsZero() || amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	var updated *domain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		invoice, err := repo.FindByID(ctx, orgID, invoiceID)
		if err != nil {
			return err
		}
		invoice.TotalPaid = invoice.TotalPaid.Add(amount)
		invoice.UpdatedAt = time.Now().UTC()
		if err := repo.Update(ctx, invoice); err != nil {
			return err
		}
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return respond(updated), nil
}

func (s *Service) Delete(ctx context.Context, orgID snowflake.ID, id string) error {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || invoiceID == 0 {
		return domain.ErrInvalidID
	}
	// Retainer references are nulled, not cascaded. The entries keep their
	// amounts so the fund history stays intact.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.retainers.WithTx(tx).ClearInvoiceRefs(ctx, orgID, invoiceID); err != nil {
			return err
		}
		return s.repo.WithTx(tx).SoftDelete(ctx, orgID, invoiceID)
	})
}

func respond(invoice *domain.Invoice) *domain.InvoiceResponse {
	return &domain.InvoiceResponse{
		Invoice: *invoice,
		Balance: invoice.Balance(),
	}
}

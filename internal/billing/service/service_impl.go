package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/billing/domain"
	casedomain "github.com/casetrail/casetrail/internal/casefile/domain"
	updatedomain "github.com/casetrail/casetrail/internal/caseupdate/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LegacyUpdateTitle names the case updates synthesized while reconciling
// historic billing rows.
const LegacyUpdateTitle = "Legacy Billing Entry"

const legacyUpdateType = "legacy_billing"

var hundred = decimal.NewFromInt(100)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Cases   casedomain.Repository
	Updates updatedomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	cases   casedomain.Repository
	updates updatedomain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("billing.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		cases:   p.Cases,
		updates: p.Updates,
	}
}

func (s *Service) Create(ctx context.Context, orgID snowflake.ID, req domain.CreateRequest) (*domain.BillingItem, error) {
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

	switch req.FinanceType {
	case domain.FinanceTypeExpense, domain.FinanceTypeTime, domain.FinanceTypeOther:
	default:
		return nil, domain.ErrInvalidFinanceType
	}
	switch req.BillingType {
	case domain.BillingTypeTime, domain.BillingTypeExpense:
	default:
		return nil, domain.ErrInvalidBillingType
	}
	switch req.PricingModel {
	case domain.PricingModelHourly, domain.PricingModelDaily, domain.PricingModelPerActivity, domain.PricingModelFlat:
	default:
		return nil, domain.ErrInvalidPricingModel
	}
	if req.Amount.IsZero() {
		return nil, domain.ErrZeroAmount
	}
	if req.Hours.IsNegative() {
		return nil, domain.ErrInvalidHours
	}

	invoiceID, err := parseOptionalID(req.InvoiceID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	instanceID, err := parseOptionalID(req.ServiceInstanceID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	updateID, err := parseOptionalID(req.CaseUpdateID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	incurredBy, err := parseOptionalID(req.IncurredByUserID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	now := time.Now().UTC()
	item := &domain.BillingItem{
		ID:                s.genID.Generate(),
		OrgID:             orgID,
		CaseID:            caseID,
		FinanceType:       req.FinanceType,
		BillingType:       req.BillingType,
		PricingModel:      req.PricingModel,
		Amount:            req.Amount,
		Hours:             req.Hours,
		Description:       strings.TrimSpace(req.Description),
		Status:            req.Status,
		InvoiceID:         invoiceID,
		ServiceInstanceID: instanceID,
		CaseUpdateID:      updateID,
		IncurredByUserID:  incurredBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, orgID snowflake.ID, id string) (*domain.BillingItem, error) {
	itemID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || itemID == 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, orgID, itemID)
}

func (s *Service) ListByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]domain.BillingItem, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(caseID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidCase
	}
	return s.repo.ListByCase(ctx, orgID, id)
}

func (s *Service) ComputeBudgetSummary(ctx context.Context, orgID snowflake.ID, caseID string) (*domain.BudgetSummary, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(caseID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidCase
	}
	c, err := s.cases.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListActiveByCase(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	consumedHours := decimal.Zero
	consumedDollars := decimal.Zero
	for _, item := range items {
		consumedHours = consumedHours.Add(item.Hours)
		// Rows of finance type "other" never count toward the dollar budget.
		if item.FinanceType == domain.FinanceTypeExpense || item.FinanceType == domain.FinanceTypeTime {
			consumedDollars = consumedDollars.Add(item.Amount)
		}
	}

	return &domain.BudgetSummary{
		CaseID:                c.ID,
		BudgetHours:           c.BudgetHours,
		BudgetDollars:         c.BudgetDollars,
		ConsumedHours:         consumedHours,
		ConsumedDollars:       consumedDollars,
		RemainingHours:        c.BudgetHours.Sub(consumedHours),
		RemainingDollars:      c.BudgetDollars.Sub(consumedDollars),
		HoursUtilizationPct:   utilizationPct(consumedHours, c.BudgetHours),
		DollarsUtilizationPct: utilizationPct(consumedDollars, c.BudgetDollars),
	}, nil
}

func (s *Service) ReconcileLegacyBilling(ctx context.Context, batchSize int) (*domain.ReconcileReport, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	report := &domain.ReconcileReport{}
	for {
		items, err := s.repo.ListLegacyUnlinked(ctx, batchSize)
		if err != nil {
			return report, err
		}
		if len(items) == 0 {
			return report, nil
		}
		linked := 0
		for i := range items {
			report.Scanned++
			err := s.linkLegacyItem(ctx, &items[i])
			switch {
			case err == nil:
				linked++
			case errors.Is(err, domain.ErrAlreadyLinked):
				// A concurrent run linked the row first. The failed link
				// rolls this transaction back, taking the redundant
				// synthetic update with it.
				report.Skipped++
			default:
				report.Failed++
				s.log.Warn("legacy billing row skipped",
					zap.Int64("billing_item_id", int64(items[i].ID)),
					zap.Error(err))
			}
		}
		report.Linked += linked
		// Failed rows stay unlinked, so a batch that made no progress would
		// be re-read forever. Stop and leave them for a later run.
		if linked == 0 || len(items) < batchSize {
			return report, nil
		}
	}
}

// linkLegacyItem synthesizes the narrative update for one historic billing
// row and points the row at it. The update inherits the billing row's
// created_at so the timeline reflects when the work happened.
func (s *Service) linkLegacyItem(ctx context.Context, item *domain.BillingItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		update := &updatedomain.CaseUpdate{
			ID:              s.genID.Generate(),
			OrgID:           item.OrgID,
			CaseID:          item.CaseID,
			Title:           LegacyUpdateTitle,
			UpdateType:      legacyUpdateType,
			IsLegacyBilling: true,
			CreatedBy:       item.IncurredByUserID,
			CreatedAt:       item.CreatedAt,
			UpdatedAt:       item.CreatedAt,
		}
		if err := s.updates.WithTx(tx).Create(ctx, update); err != nil {
			return err
		}
		return s.repo.WithTx(tx).LinkCaseUpdate(ctx, item.ID, update.ID)
	})
}

func utilizationPct(consumed, budget decimal.Decimal) decimal.Decimal {
	if budget.IsZero() {
		return decimal.Zero
	}
	return consumed.Div(budget).Mul(hundred).Round(2)
}

func parseOptionalID(raw *string) (*snowflake.ID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := snowflake.ParseString(strings.TrimSpace(*raw))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidID
	}
	return &id, nil
}

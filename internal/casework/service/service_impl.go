package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/casetrail/casetrail/internal/billing/domain"
	casedomain "github.com/casetrail/casetrail/internal/casefile/domain"
	"github.com/casetrail/casetrail/internal/casework/domain"
	enforcementdomain "github.com/casetrail/casetrail/internal/enforcement/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	Cases       casedomain.Repository
	Enforcement enforcementdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	cases       casedomain.Repository
	enforcement enforcementdomain.Service
}

func NewService(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("casework.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		cases:       p.Cases,
		enforcement: p.Enforcement,
	}
}

func (s *Service) CreateService(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req domain.CreateServiceRequest) (*domain.CaseService, error) {
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
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	svc := &domain.CaseService{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		CaseID:    caseID,
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListServicesByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]domain.CaseService, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(caseID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidCase
	}
	return s.repo.ListServicesByCase(ctx, orgID, id)
}

func (s *Service) CreatePricingRule(ctx context.Context, orgID snowflake.ID, req domain.CreatePricingRuleRequest) (*domain.PricingRule, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	serviceID, err := snowflake.ParseString(strings.TrimSpace(req.CaseServiceID))
	if err != nil || serviceID == 0 {
		return nil, domain.ErrInvalidService
	}
	if _, err := s.repo.FindServiceByID(ctx, orgID, serviceID); err != nil {
		return nil, domain.ErrInvalidService
	}
	switch req.PricingModel {
	case billingdomain.PricingModelHourly, billingdomain.PricingModelDaily,
		billingdomain.PricingModelPerActivity, billingdomain.PricingModelFlat:
	default:
		return nil, domain.ErrInvalidPricingModel
	}
	if req.Rate.IsNegative() {
		return nil, domain.ErrInvalidRate
	}

	now := time.Now().UTC()
	rule := &domain.PricingRule{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		CaseServiceID: serviceID,
		PricingModel:  req.PricingModel,
		Rate:          req.Rate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.CreatePricingRule(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) ListPricingRules(ctx context.Context, orgID snowflake.ID, caseServiceID string) ([]domain.PricingRule, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(caseServiceID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidService
	}
	return s.repo.ListPricingRules(ctx, orgID, id)
}

func (s *Service) CreateInstance(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req domain.CreateInstanceRequest) (*domain.ServiceInstance, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	serviceID, err := snowflake.ParseString(strings.TrimSpace(req.CaseServiceID))
	if err != nil || serviceID == 0 {
		return nil, domain.ErrInvalidService
	}
	svc, err := s.repo.FindServiceByID(ctx, orgID, serviceID)
	if err != nil {
		return nil, domain.ErrInvalidService
	}
	if req.OccurredAt.IsZero() {
		return nil, domain.ErrInvalidOccurredAt
	}

	instance := &domain.ServiceInstance{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		CaseID:        svc.CaseID,
		CaseServiceID: serviceID,
		Billable:      req.Billable,
		OccurredAt:    req.OccurredAt.UTC(),
		CreatedBy:     createdBy,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.CreateInstance(ctx, instance); err != nil {
		return nil, err
	}

	// Billable work with no pricing rule is a billing gap, not a reason to
	// block field work. The write stands and the gap is documented once.
	if req.Billable {
		rules, err := s.repo.ListPricingRules(ctx, orgID, serviceID)
		if err != nil {
			s.log.Warn("pricing rule lookup failed", zap.Error(err))
		} else if len(rules) == 0 {
			_, _ = s.enforcement.Record(ctx, enforcementdomain.Entry{
				OrgID:           orgID,
				CaseID:          &svc.CaseID,
				UserID:          &createdBy,
				ActionType:      "service_instance.create",
				EnforcementType: "pricing_rule_missing",
				WasBlocked:      false,
				Reason:          "billable service instance recorded without a pricing rule",
				Context: map[string]any{
					"case_service_id":     svc.ID.String(),
					"service_instance_id": instance.ID.String(),
				},
			})
		}
	}
	return instance, nil
}

func (s *Service) ListInstancesByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]domain.ServiceInstance, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(caseID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidCase
	}
	return s.repo.ListInstancesByCase(ctx, orgID, id)
}

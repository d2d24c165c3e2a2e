package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/casefile/domain"
	picklistdomain "github.com/casetrail/casetrail/internal/picklist/domain"
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
	Picklists picklistdomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	picklists picklistdomain.Service
}

func NewService(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("casefile.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		picklists: p.Picklists,
	}
}

func (s *Service) Create(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req domain.CreateRequest) (*domain.Case, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	reference := strings.TrimSpace(req.ReferenceNumber)
	if reference == "" {
		return nil, domain.ErrInvalidReference
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}
	if req.BudgetHours.IsNegative() || req.BudgetDollars.IsNegative() {
		return nil, domain.ErrInvalidBudget
	}

	status := strings.TrimSpace(req.Status)
	if err := s.validateStatus(ctx, orgID, status); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Case{
		ID:              s.genID.Generate(),
		OrgID:           orgID,
		ReferenceNumber: reference,
		Title:           title,
		Status:          status,
		BudgetHours:     req.BudgetHours,
		BudgetDollars:   req.BudgetDollars,
		CreatedBy:       createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, orgID snowflake.ID, id string) (*domain.Case, error) {
	caseID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, orgID, caseID)
}

func (s *Service) List(ctx context.Context, orgID snowflake.ID) ([]domain.Case, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	return s.repo.ListByOrg(ctx, orgID)
}

func (s *Service) Update(ctx context.Context, orgID snowflake.ID, req domain.UpdateRequest) (*domain.Case, error) {
	caseID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, orgID, caseID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		c.Title = title
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if err := s.validateStatus(ctx, orgID, status); err != nil {
			return nil, err
		}
		c.Status = status
	}
	if req.BudgetHours != nil {
		if req.BudgetHours.IsNegative() {
			return nil, domain.ErrInvalidBudget
		}
		c.BudgetHours = *req.BudgetHours
	}
	if req.BudgetDollars != nil {
		if req.BudgetDollars.IsNegative() {
			return nil, domain.ErrInvalidBudget
		}
		c.BudgetDollars = *req.BudgetDollars
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, orgID snowflake.ID, id string) error {
	caseID, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, orgID, caseID)
}

func (s *Service) validateStatus(ctx context.Context, orgID snowflake.ID, status string) error {
	if status == "" {
		return domain.ErrInvalidStatus
	}
	ok, err := s.picklists.Contains(ctx, orgID, picklistdomain.TypeCaseStatus, status)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidStatus
	}
	return nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

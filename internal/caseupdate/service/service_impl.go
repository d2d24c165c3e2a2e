package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/caseupdate/domain"
	picklistdomain "github.com/casetrail/casetrail/internal/picklist/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:       p.Log.Named("caseupdate.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		picklists: p.Picklists,
	}
}

func (s *Service) Create(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req domain.CreateRequest) (*domain.CaseUpdate, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	caseID, err := snowflake.ParseString(strings.TrimSpace(req.CaseID))
	if err != nil || caseID == 0 {
		return nil, domain.ErrInvalidCase
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}

	updateType := strings.TrimSpace(req.UpdateType)
	ok, err := s.picklists.Contains(ctx, orgID, picklistdomain.TypeUpdateType, updateType)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidUpdateType
	}

	now := time.Now().UTC()
	update := &domain.CaseUpdate{
		ID:               s.genID.Generate(),
		OrgID:            orgID,
		CaseID:           caseID,
		Title:            title,
		UpdateType:       updateType,
		Body:             req.Body,
		ActivityTimeline: datatypes.NewJSONSlice(req.ActivityTimeline),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if createdBy != 0 {
		update.CreatedBy = &createdBy
	}

	if err := s.repo.Create(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

func (s *Service) Edit(ctx context.Context, orgID snowflake.ID, req domain.EditRequest) (*domain.CaseUpdate, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidID
	}

	update, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if update.IsLegacyBilling {
		return nil, domain.ErrImmutableLegacyUpdate
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		update.Title = title
	}
	if req.Body != nil {
		update.Body = *req.Body
	}
	if req.ActivityTimeline != nil {
		update.ActivityTimeline = datatypes.NewJSONSlice(*req.ActivityTimeline)
	}
	update.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

func (s *Service) ListByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]domain.CaseUpdate, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	id, err := snowflake.ParseString(strings.TrimSpace(caseID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidCase
	}
	return s.repo.ListByCase(ctx, orgID, id)
}

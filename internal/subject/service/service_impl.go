package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	picklistdomain "github.com/casetrail/casetrail/internal/picklist/domain"
	"github.com/casetrail/casetrail/internal/subject/domain"
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
		log:       p.Log.Named("subject.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		picklists: p.Picklists,
	}
}

func (s *Service) Create(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req domain.CreateRequest) (*domain.Subject, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	caseID, err := snowflake.ParseString(strings.TrimSpace(req.CaseID))
	if err != nil || caseID == 0 {
		return nil, domain.ErrInvalidCase
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	subjectType := strings.TrimSpace(req.SubjectType)
	ok, err := s.picklists.Contains(ctx, orgID, picklistdomain.TypeSubjectType, subjectType)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidSubjectType
	}

	now := time.Now().UTC()
	subject := &domain.Subject{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		CaseID:      caseID,
		Name:        name,
		SubjectType: subjectType,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *Service) Get(ctx context.Context, orgID snowflake.ID, id string) (*domain.Subject, error) {
	subjectID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || subjectID == 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, orgID, subjectID)
}

func (s *Service) ListByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]domain.Subject, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(caseID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidCase
	}
	return s.repo.ListByCase(ctx, orgID, id)
}

func (s *Service) Delete(ctx context.Context, orgID snowflake.ID, id string) error {
	subjectID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || subjectID == 0 {
		return domain.ErrInvalidID
	}
	return s.repo.SoftDelete(ctx, orgID, subjectID)
}

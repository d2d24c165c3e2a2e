package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/attachment/domain"
	subjectdomain "github.com/casetrail/casetrail/internal/subject/domain"
	"github.com/casetrail/casetrail/pkg/db"
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
	Subjects subjectdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	subjects subjectdomain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("attachment.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		subjects: p.Subjects,
	}
}

func (s *Service) Create(ctx context.Context, orgID snowflake.ID, uploadedBy snowflake.ID, req domain.CreateRequest) (*domain.Attachment, []domain.Attachment, error) {
	if orgID == 0 {
		return nil, nil, domain.ErrInvalidOrganization
	}
	subjectID, err := snowflake.ParseString(strings.TrimSpace(req.SubjectID))
	if err != nil || subjectID == 0 {
		return nil, nil, domain.ErrInvalidSubject
	}
	fileName := strings.TrimSpace(req.FileName)
	if fileName == "" {
		return nil, nil, domain.ErrInvalidFileName
	}
	hash := strings.TrimSpace(req.ContentHash)
	if hash == "" {
		return nil, nil, domain.ErrInvalidContentHash
	}

	subject, err := s.subjects.FindByID(ctx, orgID, subjectID)
	if err != nil {
		return nil, nil, domain.ErrInvalidSubject
	}

	existing, err := s.repo.FindByCaseHash(ctx, subject.CaseID, hash)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, domain.ErrDuplicateInCase
	}

	// Matches in other cases of the same org are surfaced, not blocked. The
	// caller decides whether a cross-case duplicate is a problem.
	duplicates, err := s.repo.ListByOrgHash(ctx, orgID, hash)
	if err != nil {
		return nil, nil, err
	}

	attachment := &domain.Attachment{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		CaseID:      subject.CaseID,
		SubjectID:   subjectID,
		FileName:    fileName,
		ContentHash: hash,
		UploadedBy:  uploadedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, attachment); err != nil {
		// Two concurrent uploads of the same content can both pass the
		// FindByCaseHash check; the unique index settles the race.
		if db.IsDuplicateKeyErr(err) {
			return nil, nil, domain.ErrDuplicateInCase
		}
		return nil, nil, err
	}
	return attachment, duplicates, nil
}

func (s *Service) Get(ctx context.Context, orgID snowflake.ID, id string) (*domain.Attachment, error) {
	attachmentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || attachmentID == 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, orgID, attachmentID)
}

func (s *Service) ListBySubject(ctx context.Context, orgID snowflake.ID, subjectID string) ([]domain.Attachment, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(subjectID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidSubject
	}
	return s.repo.ListBySubject(ctx, orgID, id)
}

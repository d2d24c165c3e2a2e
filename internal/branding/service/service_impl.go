package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/branding/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("branding.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) GetSettings(ctx context.Context, orgID snowflake.ID) (*domain.OrganizationSettings, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	return s.repo.FindSettings(ctx, orgID)
}

func (s *Service) UpdateSettings(ctx context.Context, orgID snowflake.ID, req domain.UpdateSettingsRequest) (*domain.OrganizationSettings, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	settings, err := s.repo.FindSettings(ctx, orgID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		settings = &domain.OrganizationSettings{
			ID:        s.genID.Generate(),
			OrgID:     orgID,
			CreatedAt: time.Now().UTC(),
		}
	}

	applyString(&settings.CompanyName, req.CompanyName)
	applyString(&settings.LogoURL, req.LogoURL)
	applyString(&settings.SquareLogoURL, req.SquareLogoURL)
	applyString(&settings.WebsiteURL, req.WebsiteURL)
	applyString(&settings.ContactEmail, req.ContactEmail)
	applyString(&settings.ContactPhone, req.ContactPhone)
	applyString(&settings.BillingNotes, req.BillingNotes)
	settings.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *Service) CreateForm(ctx context.Context, orgID snowflake.ID, req domain.CreateFormRequest) (*domain.CaseRequestForm, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	form := &domain.CaseRequestForm{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Name:      name,
		Active:    req.Active,
		Public:    req.Public,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateForm(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *Service) ListForms(ctx context.Context, orgID snowflake.ID) ([]domain.CaseRequestForm, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	return s.repo.ListForms(ctx, orgID)
}

func (s *Service) PublicBranding(ctx context.Context, orgID snowflake.ID) (*domain.PublicBranding, error) {
	if orgID == 0 {
		return nil, domain.ErrNotFound
	}
	open, err := s.repo.HasActivePublicForm(ctx, orgID)
	if err != nil {
		return nil, err
	}
	// A tenant with no open intake form does not exist as far as anonymous
	// callers are concerned.
	if !open {
		return nil, domain.ErrNotFound
	}
	settings, err := s.repo.FindSettings(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return &domain.PublicBranding{
		CompanyName:   settings.CompanyName,
		LogoURL:       settings.LogoURL,
		SquareLogoURL: settings.SquareLogoURL,
		WebsiteURL:    settings.WebsiteURL,
	}, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

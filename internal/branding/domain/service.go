package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type UpdateSettingsRequest struct {
	CompanyName   *string `json:"company_name,omitempty"`
	LogoURL       *string `json:"logo_url,omitempty"`
	SquareLogoURL *string `json:"square_logo_url,omitempty"`
	WebsiteURL    *string `json:"website_url,omitempty"`
	ContactEmail  *string `json:"contact_email,omitempty"`
	ContactPhone  *string `json:"contact_phone,omitempty"`
	BillingNotes  *string `json:"billing_notes,omitempty"`
}

type CreateFormRequest struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Public bool   `json:"public"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindSettings(ctx context.Context, orgID snowflake.ID) (*OrganizationSettings, error)
	SaveSettings(ctx context.Context, settings *OrganizationSettings) error
	CreateForm(ctx context.Context, form *CaseRequestForm) error
	ListForms(ctx context.Context, orgID snowflake.ID) ([]CaseRequestForm, error)
	// HasActivePublicForm gates the public branding surface.
	HasActivePublicForm(ctx context.Context, orgID snowflake.ID) (bool, error)
}

type Service interface {
	GetSettings(ctx context.Context, orgID snowflake.ID) (*OrganizationSettings, error)
	UpdateSettings(ctx context.Context, orgID snowflake.ID, req UpdateSettingsRequest) (*OrganizationSettings, error)
	CreateForm(ctx context.Context, orgID snowflake.ID, req CreateFormRequest) (*CaseRequestForm, error)
	ListForms(ctx context.Context, orgID snowflake.ID) ([]CaseRequestForm, error)
	// PublicBranding is reachable without authentication. It answers only
	// when the organization has an active public case request form, and only
	// with the four branding fields; everything else behaves as not found.
	PublicBranding(ctx context.Context, orgID snowflake.ID) (*PublicBranding, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrNotFound            = errors.New("not_found")
)

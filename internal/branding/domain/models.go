// Package domain contains organization settings and the public branding
// projection.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// OrganizationSettings holds tenant presentation and contact configuration.
// Most of it is private; only the branding subset ever leaves the tenant.
type OrganizationSettings struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID `gorm:"not null;uniqueIndex" json:"org_id"`
	CompanyName   string       `gorm:"type:text" json:"company_name"`
	LogoURL       string       `gorm:"type:text" json:"logo_url"`
	SquareLogoURL string       `gorm:"type:text" json:"square_logo_url"`
	WebsiteURL    string       `gorm:"type:text" json:"website_url"`
	ContactEmail  string       `gorm:"type:text" json:"contact_email"`
	ContactPhone  string       `gorm:"type:text" json:"contact_phone"`
	BillingNotes  string       `gorm:"type:text" json:"billing_notes"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (OrganizationSettings) TableName() string { return "organization_settings" }

// CaseRequestForm is a tenant's intake form. Branding becomes publicly
// readable only while a form is both active and public.
type CaseRequestForm struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"not null;index" json:"org_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Active    bool         `gorm:"not null;default:false" json:"active"`
	Public    bool         `gorm:"not null;default:false" json:"public"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (CaseRequestForm) TableName() string { return "case_request_forms" }

// PublicBranding is the complete unauthenticated surface of a tenant.
// Exactly these four fields, nothing else.
type PublicBranding struct {
	CompanyName   string `json:"company_name"`
	LogoURL       string `json:"logo_url"`
	SquareLogoURL string `json:"square_logo_url"`
	WebsiteURL    string `json:"website_url"`
}

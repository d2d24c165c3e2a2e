// Package domain contains persistence models for the tenant directory.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Organization represents a tenant. Organizations are never hard-deleted;
// lifecycle is tracked through SubscriptionStatus.
type Organization struct {
	ID                 snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name               string            `gorm:"type:text;not null" json:"name"`
	Slug               string            `gorm:"type:text;not null;uniqueIndex:ux_organizations_slug" json:"slug"`
	SubscriptionTier   string            `gorm:"type:text;not null;default:'basic'" json:"subscription_tier"`
	SubscriptionStatus string            `gorm:"type:text;not null;default:'active'" json:"subscription_status"`
	PlanKey            string            `gorm:"type:text;not null;default:'basic'" json:"plan_key"`
	FeatureFlags       datatypes.JSONMap `gorm:"type:jsonb" json:"feature_flags"`
	CreatedAt          time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }

// OrganizationMember binds a user to an organization with a role. A user
// holds at most one membership row per organization.
type OrganizationMember struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"not null;index;uniqueIndex:ux_org_user,priority:1" json:"org_id"`
	UserID    snowflake.ID `gorm:"not null;index;uniqueIndex:ux_org_user,priority:2" json:"user_id"`
	Role      string       `gorm:"type:text;not null" json:"role"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (OrganizationMember) TableName() string { return "organization_members" }

// GlobalAdminGrant is the baseline admin grant written at signup alongside
// the owner membership.
type GlobalAdminGrant struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"not null;uniqueIndex:ux_global_admin_user" json:"user_id"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (GlobalAdminGrant) TableName() string { return "global_admin_grants" }

// Profile mirrors the identity provider's user record. The authorization core
// trusts only the principal id from the identity token; everything else about
// a user lives here.
type Profile struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	DisplayName string       `gorm:"type:text;not null" json:"display_name"`
	Email       string       `gorm:"type:text;not null;uniqueIndex:ux_profiles_email" json:"email"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "profiles" }

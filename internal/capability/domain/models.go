// Package domain contains the capability matrix model for permission checks.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// PermissionRule is one (role, feature_key) grant. Rows with a nil OrgID form
// the platform default matrix; rows scoped to an organization override it.
type PermissionRule struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrgID      *snowflake.ID `gorm:"index" json:"org_id,omitempty"`
	Role       string        `gorm:"type:text;not null;index:ix_permission_rules_role_key,priority:1" json:"role"`
	FeatureKey string        `gorm:"type:text;not null;index:ix_permission_rules_role_key,priority:2" json:"feature_key"`
	Allowed    bool          `gorm:"not null" json:"allowed"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (PermissionRule) TableName() string { return "permission_rules" }

// Package domain contains the append-only enforcement action log.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// EnforcementAction records one policy or pricing decision. Rows are written
// by the ledger and access layers only and are never updated or deleted.
type EnforcementAction struct {
	ID              snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrgID           snowflake.ID      `gorm:"not null;index" json:"org_id"`
	CaseID          *snowflake.ID     `gorm:"index" json:"case_id,omitempty"`
	UserID          *snowflake.ID     `json:"user_id,omitempty"`
	ActionType      string            `gorm:"type:text;not null" json:"action_type"`
	EnforcementType string            `gorm:"type:text;not null" json:"enforcement_type"`
	WasBlocked      bool              `gorm:"not null" json:"was_blocked"`
	Reason          string            `gorm:"type:text;not null" json:"reason"`
	Context         datatypes.JSONMap `gorm:"type:jsonb" json:"context"`
	CreatedAt       time.Time         `gorm:"not null;index;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (EnforcementAction) TableName() string { return "enforcement_actions" }

// Cursor positions a paginated listing.
type Cursor struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

// ListFilter narrows a compliance listing.
type ListFilter struct {
	OrgID           snowflake.ID
	ActionType      string
	EnforcementType string
	WasBlocked      *bool
	StartAt         *time.Time
	EndAt           *time.Time
	Cursor          *Cursor
	Limit           int
}

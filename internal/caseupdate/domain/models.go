// Package domain contains narrative case update models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityEntry is one step of an update's activity timeline.
type ActivityEntry struct {
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
}

// CaseUpdate is a narrative, billing-linkable event on a case. Updates with
// IsLegacyBilling set are synthesized during billing reconciliation and are
// immutable by policy.
type CaseUpdate struct {
	ID               snowflake.ID                         `gorm:"primaryKey" json:"id"`
	OrgID            snowflake.ID                         `gorm:"not null;index" json:"org_id"`
	CaseID           snowflake.ID                         `gorm:"not null;index" json:"case_id"`
	Title            string                               `gorm:"type:text;not null" json:"title"`
	UpdateType       string                               `gorm:"type:text;not null" json:"update_type"`
	Body             string                               `gorm:"type:text" json:"body"`
	ActivityTimeline datatypes.JSONSlice[ActivityEntry]   `gorm:"type:jsonb" json:"activity_timeline"`
	IsLegacyBilling  bool                                 `gorm:"not null;default:false" json:"is_legacy_billing"`
	CreatedBy        *snowflake.ID                        `json:"created_by,omitempty"`
	CreatedAt        time.Time                            `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time                            `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt        gorm.DeletedAt                       `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (CaseUpdate) TableName() string { return "case_updates" }

// Package domain contains per-organization controlled vocabularies.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Entry types recognized by the registry.
const (
	TypeCaseStatus  = "case_status"
	TypeUpdateType  = "update_type"
	TypeSubjectType = "subject_type"
)

// Status classification for case_status entries.
const (
	StatusTypeOpen   = "open"
	StatusTypeClosed = "closed"
)

// PicklistEntry is one controlled vocabulary value scoped to an organization.
// StatusType is required (open|closed) when Type is case_status, null otherwise.
type PicklistEntry struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID  `gorm:"not null;index;uniqueIndex:ux_picklist_org_type_value,priority:1" json:"org_id"`
	Type       string        `gorm:"type:text;not null;uniqueIndex:ux_picklist_org_type_value,priority:2" json:"type"`
	Value      string        `gorm:"type:text;not null;uniqueIndex:ux_picklist_org_type_value,priority:3" json:"value"`
	Active     bool          `gorm:"not null;default:true" json:"active"`
	SortOrder  int           `gorm:"not null;default:0" json:"sort_order"`
	StatusType *string       `gorm:"type:text" json:"status_type,omitempty"`
	CreatedBy  *snowflake.ID `json:"created_by,omitempty"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (PicklistEntry) TableName() string { return "picklist_entries" }

// ValidType reports whether t is a registry type.
func ValidType(t string) bool {
	switch t {
	case TypeCaseStatus, TypeUpdateType, TypeSubjectType:
		return true
	default:
		return false
	}
}

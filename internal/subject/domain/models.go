// Package domain contains case subject models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Subject is a person or entity of interest attached to a case.
type Subject struct {
	ID          snowflake.ID   `gorm:"primaryKey" json:"id"`
	OrgID       snowflake.ID   `gorm:"not null;index" json:"org_id"`
	CaseID      snowflake.ID   `gorm:"not null;index" json:"case_id"`
	Name        string         `gorm:"type:text;not null" json:"name"`
	SubjectType string         `gorm:"type:text;not null" json:"subject_type"`
	CreatedBy   snowflake.ID   `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (Subject) TableName() string { return "subjects" }

// Package domain contains attachment metadata models. File bytes live in
// external storage; the core keeps only the content hash for dedup.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Attachment is file metadata hanging off a subject. ContentHash comes from
// the external file store and keys duplicate detection per case and per org.
// Rows are removed outright rather than tombstoned: a soft-deleted row would
// hold the per-case hash index hostage against re-uploading the same content.
type Attachment struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID       snowflake.ID `gorm:"not null;index;index:ix_attachments_org_hash,priority:1" json:"org_id"`
	CaseID      snowflake.ID `gorm:"not null;index;uniqueIndex:ux_attachments_case_hash,priority:1" json:"case_id"`
	SubjectID   snowflake.ID `gorm:"not null;index" json:"subject_id"`
	FileName    string       `gorm:"type:text;not null" json:"file_name"`
	ContentHash string       `gorm:"type:text;not null;uniqueIndex:ux_attachments_case_hash,priority:2;index:ix_attachments_org_hash,priority:2" json:"content_hash"`
	UploadedBy  snowflake.ID `gorm:"not null" json:"uploaded_by"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Attachment) TableName() string { return "attachments" }

// Package domain contains case service definitions, their pricing rules and
// performed service instances.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// CaseService is a kind of work sold on a case, e.g. surveillance or records
// retrieval.
type CaseService struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"not null;index" json:"org_id"`
	CaseID    snowflake.ID `gorm:"not null;index" json:"case_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	CreatedBy snowflake.ID `gorm:"not null" json:"created_by"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (CaseService) TableName() string { return "case_services" }

// PricingRule prices one service under one pricing model.
type PricingRule struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID    `gorm:"not null;index" json:"org_id"`
	CaseServiceID snowflake.ID    `gorm:"not null;index" json:"case_service_id"`
	PricingModel  string          `gorm:"type:text;not null" json:"pricing_model"`
	Rate          decimal.Decimal `gorm:"type:numeric;not null" json:"rate"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (PricingRule) TableName() string { return "pricing_rules" }

// ServiceInstance is one occurrence of a service being performed.
type ServiceInstance struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID `gorm:"not null;index" json:"org_id"`
	CaseID        snowflake.ID `gorm:"not null;index" json:"case_id"`
	CaseServiceID snowflake.ID `gorm:"not null;index" json:"case_service_id"`
	Billable      bool         `gorm:"not null;default:false" json:"billable"`
	OccurredAt    time.Time    `gorm:"not null" json:"occurred_at"`
	CreatedBy     snowflake.ID `gorm:"not null" json:"created_by"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (ServiceInstance) TableName() string { return "service_instances" }

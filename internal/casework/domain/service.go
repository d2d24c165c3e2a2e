package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateServiceRequest struct {
	CaseID string `json:"case_id"`
	Name   string `json:"name"`
}

type CreatePricingRuleRequest struct {
	CaseServiceID string          `json:"case_service_id"`
	PricingModel  string          `json:"pricing_model"`
	Rate          decimal.Decimal `json:"rate"`
}

type CreateInstanceRequest struct {
	CaseServiceID string    `json:"case_service_id"`
	Billable      bool      `json:"billable"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateService(ctx context.Context, svc *CaseService) error
	FindServiceByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*CaseService, error)
	ListServicesByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]CaseService, error)
	CreatePricingRule(ctx context.Context, rule *PricingRule) error
	ListPricingRules(ctx context.Context, orgID snowflake.ID, caseServiceID snowflake.ID) ([]PricingRule, error)
	CreateInstance(ctx context.Context, instance *ServiceInstance) error
	ListInstancesByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]ServiceInstance, error)
}

type Service interface {
	CreateService(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req CreateServiceRequest) (*CaseService, error)
	ListServicesByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]CaseService, error)
	CreatePricingRule(ctx context.Context, orgID snowflake.ID, req CreatePricingRuleRequest) (*PricingRule, error)
	ListPricingRules(ctx context.Context, orgID snowflake.ID, caseServiceID string) ([]PricingRule, error)
	// CreateInstance records a performed service. A billable instance whose
	// service has no pricing rule still succeeds; the gap is documented with
	// a single non-blocking enforcement action instead of failing field work.
	CreateInstance(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req CreateInstanceRequest) (*ServiceInstance, error)
	ListInstancesByCase(ctx context.Context, orgID snowflake.ID, caseID string) ([]ServiceInstance, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidCase         = errors.New("invalid_case")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidService      = errors.New("invalid_case_service")
	ErrInvalidPricingModel = errors.New("invalid_pricing_model")
	ErrInvalidRate         = errors.New("invalid_rate")
	ErrInvalidOccurredAt   = errors.New("invalid_occurred_at")
	ErrNotFound            = errors.New("not_found")
)

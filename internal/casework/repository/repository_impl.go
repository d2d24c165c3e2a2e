package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/casework/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) CreateService(ctx context.Context, svc *domain.CaseService) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *repository) FindServiceByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*domain.CaseService, error) {
	var svc domain.CaseService
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&svc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &svc, nil
}

func (r *repository) ListServicesByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]domain.CaseService, error) {
	var services []domain.CaseService
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND case_id = ?", orgID, caseID).
		Order("created_at asc, id asc").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repository) CreatePricingRule(ctx context.Context, rule *domain.PricingRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) ListPricingRules(ctx context.Context, orgID snowflake.ID, caseServiceID snowflake.ID) ([]domain.PricingRule, error) {
	var rules []domain.PricingRule
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND case_service_id = ?", orgID, caseServiceID).
		Order("created_at asc, id asc").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repository) CreateInstance(ctx context.Context, instance *domain.ServiceInstance) error {
	return r.db.WithContext(ctx).Create(instance).Error
}

func (r *repository) ListInstancesByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]domain.ServiceInstance, error) {
	var instances []domain.ServiceInstance
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND case_id = ?", orgID, caseID).
		Order("occurred_at asc, id asc").
		Find(&instances).Error
	if err != nil {
		return nil, err
	}
	return instances, nil
}

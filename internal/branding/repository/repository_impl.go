package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/branding/domain"
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

func (r *repository) FindSettings(ctx context.Context, orgID snowflake.ID) (*domain.OrganizationSettings, error) {
	var settings domain.OrganizationSettings
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &settings, nil
}

func (r *repository) SaveSettings(ctx context.Context, settings *domain.OrganizationSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

func (r *repository) CreateForm(ctx context.Context, form *domain.CaseRequestForm) error {
	return r.db.WithContext(ctx).Create(form).Error
}

func (r *repository) ListForms(ctx context.Context, orgID snowflake.ID) ([]domain.CaseRequestForm, error) {
	var forms []domain.CaseRequestForm
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at asc, id asc").
		Find(&forms).Error
	if err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *repository) HasActivePublicForm(ctx context.Context, orgID snowflake.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CaseRequestForm{}).
		Where("org_id = ? AND active = ? AND public = ?", orgID, true, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

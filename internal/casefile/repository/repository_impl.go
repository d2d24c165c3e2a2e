package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/casefile/domain"
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

func (r *repository) Create(ctx context.Context, c *domain.Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) Update(ctx context.Context, c *domain.Case) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) FindByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*domain.Case, error) {
	var c domain.Case
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListByOrg(ctx context.Context, orgID snowflake.ID) ([]domain.Case, error) {
	var cases []domain.Case
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at desc").
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *repository) SoftDelete(ctx context.Context, orgID snowflake.ID, id snowflake.ID) error {
	result := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&domain.Case{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/caseupdate/domain"
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

func (r *repository) Create(ctx context.Context, update *domain.CaseUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *repository) Update(ctx context.Context, update *domain.CaseUpdate) error {
	return r.db.WithContext(ctx).Save(update).Error
}

func (r *repository) FindByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*domain.CaseUpdate, error) {
	var update domain.CaseUpdate
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&update).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &update, nil
}

func (r *repository) ListByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]domain.CaseUpdate, error) {
	var updates []domain.CaseUpdate
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND case_id = ?", orgID, caseID).
		Order("created_at desc").
		Find(&updates).Error
	if err != nil {
		return nil, err
	}
	return updates, nil
}

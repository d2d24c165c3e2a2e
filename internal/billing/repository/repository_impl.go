package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/billing/domain"
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

func (r *repository) Create(ctx context.Context, item *domain.BillingItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) FindByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*domain.BillingItem, error) {
	var item domain.BillingItem
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]domain.BillingItem, error) {
	var items []domain.BillingItem
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND case_id = ?", orgID, caseID).
		Order("created_at asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListActiveByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]domain.BillingItem, error) {
	var items []domain.BillingItem
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND case_id = ?", orgID, caseID).
		Where("status IS NULL OR status <> ?", domain.StatusRejected).
		Order("created_at asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListLegacyUnlinked(ctx context.Context, limit int) ([]domain.BillingItem, error) {
	var items []domain.BillingItem
	err := r.db.WithContext(ctx).
		Where("activity_type = ? AND case_update_id IS NULL", "event").
		Order("created_at asc, id asc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) LinkCaseUpdate(ctx context.Context, itemID snowflake.ID, updateID snowflake.ID) error {
	res := r.db.WithContext(ctx).
		Model(&domain.BillingItem{}).
		Where("id = ? AND case_update_id IS NULL", itemID).
		Update("case_update_id", updateID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyLinked
	}
	return nil
}

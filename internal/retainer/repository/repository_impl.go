package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/retainer/domain"
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

func (r *repository) Create(ctx context.Context, entry *domain.RetainerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListByCase(ctx context.Context, orgID snowflake.ID, caseID snowflake.ID) ([]domain.RetainerEntry, error) {
	var entries []domain.RetainerEntry
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND case_id = ?", orgID, caseID).
		Order("created_at asc, id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ClearInvoiceRefs(ctx context.Context, orgID snowflake.ID, invoiceID snowflake.ID) error {
	return r.db.WithContext(ctx).
		Model(&domain.RetainerEntry{}).
		Where("org_id = ? AND invoice_id = ?", orgID, invoiceID).
		Update("invoice_id", nil).Error
}

package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/attachment/domain"
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

func (r *repository) Create(ctx context.Context, attachment *domain.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *repository) FindByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*domain.Attachment, error) {
	var attachment domain.Attachment
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &attachment, nil
}

func (r *repository) FindByCaseHash(ctx context.Context, caseID snowflake.ID, hash string) (*domain.Attachment, error) {
	var attachment domain.Attachment
	err := r.db.WithContext(ctx).
		Where("case_id = ? AND content_hash = ?", caseID, hash).
		First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attachment, nil
}

func (r *repository) ListByOrgHash(ctx context.Context, orgID snowflake.ID, hash string) ([]domain.Attachment, error) {
	var attachments []domain.Attachment
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND content_hash = ?", orgID, hash).
		Order("created_at asc").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *repository) ListBySubject(ctx context.Context, orgID snowflake.ID, subjectID snowflake.ID) ([]domain.Attachment, error) {
	var attachments []domain.Attachment
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND subject_id = ?", orgID, subjectID).
		Order("created_at asc").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

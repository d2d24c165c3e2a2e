package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	orgdomain "github.com/casetrail/casetrail/internal/organization/domain"
	"github.com/casetrail/casetrail/internal/picklist/domain"
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

func (r *repository) Create(ctx context.Context, entry *domain.PicklistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) Update(ctx context.Context, entry *domain.PicklistEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *repository) FindByID(ctx context.Context, orgID snowflake.ID, id snowflake.ID) (*domain.PicklistEntry, error) {
	var entry domain.PicklistEntry
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *repository) ListByType(ctx context.Context, orgID snowflake.ID, entryType string) ([]domain.PicklistEntry, error) {
	var entries []domain.PicklistEntry
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND type = ?", orgID, entryType).
		Order("sort_order asc, value asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) CountByType(ctx context.Context, orgID snowflake.ID, entryType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.PicklistEntry{}).
		Where("org_id = ? AND type = ?", orgID, entryType).
		Count(&count).Error
	return count, err
}

func (r *repository) AnyOwnerInOrg(ctx context.Context, orgID snowflake.ID) (*snowflake.ID, error) {
	var entry domain.PicklistEntry
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND created_by IS NOT NULL", orgID).
		Order("created_at asc").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry.CreatedBy, nil
}

func (r *repository) AnyProfile(ctx context.Context) (*snowflake.ID, error) {
	var profile orgdomain.Profile
	err := r.db.WithContext(ctx).
		Order("created_at asc").
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile.ID, nil
}

func (r *repository) ListOrganizationIDs(ctx context.Context) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := r.db.WithContext(ctx).
		Model(&orgdomain.Organization{}).
		Order("created_at asc").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/capability/domain"
	"gorm.io/gorm"
)

type repository struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewRepository(db *gorm.DB, genID *snowflake.Node) domain.Repository {
	return &repository{db: db, genID: genID}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx, genID: r.genID}
}

func (r *repository) Upsert(ctx context.Context, orgID *snowflake.ID, grant domain.Grant) error {
	stmt := r.db.WithContext(ctx).Model(&domain.PermissionRule{}).
		Where("role = ? AND feature_key = ?", grant.Role, grant.FeatureKey)
	if orgID == nil {
		stmt = stmt.Where("org_id IS NULL")
	} else {
		stmt = stmt.Where("org_id = ?", *orgID)
	}

	var existing domain.PermissionRule
	err := stmt.First(&existing).Error
	switch {
	case err == nil:
		return r.db.WithContext(ctx).Model(&domain.PermissionRule{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{
				"allowed":    grant.Allowed,
				"updated_at": time.Now().UTC(),
			}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		now := time.Now().UTC()
		rule := domain.PermissionRule{
			ID:         r.genID.Generate(),
			OrgID:      orgID,
			Role:       grant.Role,
			FeatureKey: grant.FeatureKey,
			Allowed:    grant.Allowed,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return r.db.WithContext(ctx).Create(&rule).Error
	default:
		return err
	}
}

func (r *repository) ListDefaults(ctx context.Context) ([]domain.PermissionRule, error) {
	var rules []domain.PermissionRule
	err := r.db.WithContext(ctx).
		Where("org_id IS NULL").
		Order("role asc, feature_key asc").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repository) ListOverrides(ctx context.Context, orgID snowflake.ID) ([]domain.PermissionRule, error) {
	var rules []domain.PermissionRule
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("role asc, feature_key asc").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

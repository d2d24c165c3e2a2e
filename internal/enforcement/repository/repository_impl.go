package repository

import (
	"context"
	"strings"

	"github.com/casetrail/casetrail/internal/enforcement/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, action *domain.EnforcementAction) error {
	if action == nil {
		return nil
	}
	return db.WithContext(ctx).Create(action).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.EnforcementAction, error) {
	var actions []*domain.EnforcementAction
	stmt := db.WithContext(ctx).Model(&domain.EnforcementAction{}).
		Where("org_id = ?", filter.OrgID)

	if actionType := strings.TrimSpace(filter.ActionType); actionType != "" {
		stmt = stmt.Where("action_type = ?", actionType)
	}
	if enforcementType := strings.TrimSpace(filter.EnforcementType); enforcementType != "" {
		stmt = stmt.Where("enforcement_type = ?", enforcementType)
	}
	if filter.WasBlocked != nil {
		stmt = stmt.Where("was_blocked = ?", *filter.WasBlocked)
	}
	if filter.StartAt != nil {
		stmt = stmt.Where("created_at >= ?", filter.StartAt.UTC())
	}
	if filter.EndAt != nil {
		stmt = stmt.Where("created_at <= ?", filter.EndAt.UTC())
	}
	if filter.Cursor != nil {
		stmt = stmt.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			filter.Cursor.CreatedAt,
			filter.Cursor.CreatedAt,
			filter.Cursor.ID,
		)
	}

	stmt = stmt.Order("created_at desc, id desc")
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit + 1)
	}

	if err := stmt.Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

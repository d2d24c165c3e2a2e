package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/enforcement/domain"
	"github.com/casetrail/casetrail/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("enforcement.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, entry domain.Entry) (snowflake.ID, error) {
	if entry.OrgID == 0 {
		return 0, domain.ErrInvalidOrganization
	}
	actionType := strings.TrimSpace(entry.ActionType)
	if actionType == "" {
		return 0, domain.ErrInvalidActionType
	}

	payload := map[string]any{}
	for key, value := range entry.Context {
		if key == "" {
			continue
		}
		payload[key] = value
	}

	action := domain.EnforcementAction{
		ID:              s.genID.Generate(),
		OrgID:           entry.OrgID,
		CaseID:          entry.CaseID,
		UserID:          entry.UserID,
		ActionType:      actionType,
		EnforcementType: strings.TrimSpace(entry.EnforcementType),
		WasBlocked:      entry.WasBlocked,
		Reason:          entry.Reason,
		Context:         datatypes.JSONMap(payload),
		CreatedAt:       time.Now().UTC(),
	}

	err := s.repo.Insert(ctx, s.db, &action)
	if err != nil {
		// One retry before the record is treated as best-effort-lost. The
		// decision this documents has already been made and must not roll back.
		if retryErr := s.repo.Insert(ctx, s.db, &action); retryErr != nil {
			s.log.Warn("enforcement record lost after retry",
				zap.String("action_type", actionType),
				zap.String("org_id", entry.OrgID.String()),
				zap.Error(retryErr),
			)
			return 0, retryErr
		}
	}

	return action.ID, nil
}

func (s *Service) List(ctx context.Context, orgID snowflake.ID, req domain.ListRequest) (domain.ListResponse, error) {
	if orgID == 0 {
		return domain.ListResponse{}, domain.ErrInvalidOrganization
	}
	if req.StartAt != nil && req.EndAt != nil && req.StartAt.After(*req.EndAt) {
		return domain.ListResponse{}, domain.ErrInvalidTimeRange
	}

	var cursor *domain.Cursor
	if strings.TrimSpace(req.PageToken) != "" {
		decoded, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return domain.ListResponse{}, domain.ErrInvalidPageToken
		}
		createdAt, err := time.Parse(time.RFC3339Nano, decoded.CreatedAt)
		if err != nil {
			return domain.ListResponse{}, domain.ErrInvalidPageToken
		}
		id, err := snowflake.ParseString(strings.TrimSpace(decoded.ID))
		if err != nil || id == 0 {
			return domain.ListResponse{}, domain.ErrInvalidPageToken
		}
		cursor = &domain.Cursor{ID: id, CreatedAt: createdAt}
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > 250 {
		pageSize = 250
	}

	items, err := s.repo.List(ctx, s.db, domain.ListFilter{
		OrgID:           orgID,
		ActionType:      req.ActionType,
		EnforcementType: req.EnforcementType,
		WasBlocked:      req.WasBlocked,
		StartAt:         req.StartAt,
		EndAt:           req.EndAt,
		Cursor:          cursor,
		Limit:           pageSize,
	})
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, int32(pageSize), func(item *domain.EnforcementAction) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        item.ID.String(),
			// Nanosecond precision keeps the (created_at, id) boundary exact;
			// truncating to seconds can skip rows sharing the boundary second.
			CreatedAt: item.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	actions := make([]domain.EnforcementAction, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		actions = append(actions, *item)
	}

	resp := domain.ListResponse{Actions: actions}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

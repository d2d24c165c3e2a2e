package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/capability/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("capability.service"),
		repo: p.Repo,
	}
}

func (s *Service) Can(ctx context.Context, orgID snowflake.ID, role string, featureKey string) (bool, error) {
	role = strings.TrimSpace(role)
	featureKey = strings.TrimSpace(featureKey)
	if role == "" || featureKey == "" {
		return false, nil
	}

	matrix, err := s.SnapshotForOrg(ctx, orgID)
	if err != nil {
		return false, err
	}
	return matrix.Can(role, featureKey), nil
}

func (s *Service) SnapshotForOrg(ctx context.Context, orgID snowflake.ID) (domain.Matrix, error) {
	defaultRules, err := s.repo.ListDefaults(ctx)
	if err != nil {
		return domain.Matrix{}, err
	}
	defaults := domain.NewMatrix(versionOf(defaultRules), defaultRules)

	if orgID == 0 {
		return defaults, nil
	}

	overrideRules, err := s.repo.ListOverrides(ctx, orgID)
	if err != nil {
		return domain.Matrix{}, err
	}
	overrides := domain.NewMatrix(versionOf(overrideRules), overrideRules)

	return domain.Merge(defaults, overrides), nil
}

func (s *Service) SeedDefaults(ctx context.Context, grants []domain.Grant) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, grant := range grants {
			if strings.TrimSpace(grant.Role) == "" {
				return domain.ErrInvalidRole
			}
			if strings.TrimSpace(grant.FeatureKey) == "" {
				return domain.ErrInvalidFeatureKey
			}
			if err := repo.Upsert(ctx, nil, grant); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) SetOverride(ctx context.Context, orgID snowflake.ID, grant domain.Grant) error {
	if orgID == 0 {
		return domain.ErrInvalidOrganization
	}
	if strings.TrimSpace(grant.Role) == "" {
		return domain.ErrInvalidRole
	}
	if strings.TrimSpace(grant.FeatureKey) == "" {
		return domain.ErrInvalidFeatureKey
	}
	return s.repo.Upsert(ctx, &orgID, grant)
}

func (s *Service) ListRules(ctx context.Context, orgID snowflake.ID) ([]domain.PermissionRule, error) {
	defaults, err := s.repo.ListDefaults(ctx)
	if err != nil {
		return nil, err
	}
	if orgID == 0 {
		return defaults, nil
	}
	overrides, err := s.repo.ListOverrides(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return append(defaults, overrides...), nil
}

// versionOf derives a monotone snapshot version from rule update times.
func versionOf(rules []domain.PermissionRule) int64 {
	var version int64
	for _, rule := range rules {
		if ts := rule.UpdatedAt.UnixNano(); ts > version {
			version = ts
		}
	}
	return version
}

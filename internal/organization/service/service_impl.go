package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/organization/domain"
	"github.com/casetrail/casetrail/internal/plan"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(db *gorm.DB, log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		db:    db,
		log:   log.Named("organization.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *service) ProvisionSignup(ctx context.Context, userID snowflake.ID, req domain.ProvisionRequest) (*domain.OrganizationResponse, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	orgID := s.genID.Generate()
	org := domain.Organization{
		ID:                 orgID,
		Name:               name,
		Slug:               slug.Make(name),
		SubscriptionTier:   string(plan.KeyBasic),
		SubscriptionStatus: "active",
		PlanKey:            string(plan.KeyBasic),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	// Organization, owner membership and global admin grant land together or
	// not at all.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateOrganization(ctx, org); err != nil {
			return err
		}

		member := domain.OrganizationMember{
			ID:        s.genID.Generate(),
			OrgID:     orgID,
			UserID:    userID,
			Role:      domain.RoleOwner,
			CreatedAt: now,
		}
		if err := repo.AddMember(ctx, member); err != nil {
			return err
		}

		grant := domain.GlobalAdminGrant{
			ID:        s.genID.Generate(),
			UserID:    userID,
			CreatedAt: now,
		}
		return repo.AddGlobalAdminGrant(ctx, grant)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("provisioned organization",
		zap.String("org_id", orgID.String()),
		zap.String("owner_user_id", userID.String()),
	)

	return toResponse(&org), nil
}

func (s *service) ResolveMembership(ctx context.Context, userID snowflake.ID) (*domain.Membership, error) {
	if userID == 0 {
		return nil, domain.ErrNotAMember
	}

	member, err := s.repo.FindMembershipByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrNotAMember
	}

	return &domain.Membership{OrgID: member.OrgID, Role: member.Role}, nil
}

func (s *service) IsMember(ctx context.Context, orgID snowflake.ID, userID snowflake.ID) (bool, error) {
	if orgID == 0 || userID == 0 {
		return false, nil
	}
	return s.repo.IsMember(ctx, orgID, userID)
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.OrganizationResponse, error) {
	raw := strings.TrimSpace(id)
	if raw == "" {
		return nil, domain.ErrInvalidOrganization
	}
	orgID, err := snowflake.ParseString(raw)
	if err != nil {
		return nil, domain.ErrInvalidOrganization
	}

	org, err := s.repo.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return toResponse(org), nil
}

func (s *service) ApplyCheckoutProduct(ctx context.Context, orgID snowflake.ID, productID string) error {
	if orgID == 0 {
		return domain.ErrInvalidOrganization
	}

	key := plan.FromProductID(strings.TrimSpace(productID))
	if err := s.repo.UpdatePlan(ctx, orgID, string(key), string(key)); err != nil {
		return err
	}

	s.log.Info("applied checkout product",
		zap.String("org_id", orgID.String()),
		zap.String("product_id", productID),
		zap.String("plan_key", string(key)),
	)
	return nil
}

func toResponse(org *domain.Organization) *domain.OrganizationResponse {
	return &domain.OrganizationResponse{
		ID:                 org.ID.String(),
		Name:               org.Name,
		Slug:               org.Slug,
		SubscriptionTier:   org.SubscriptionTier,
		SubscriptionStatus: org.SubscriptionStatus,
		PlanKey:            org.PlanKey,
	}
}

package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrganization(ctx context.Context, org Organization) error
	AddMember(ctx context.Context, member OrganizationMember) error
	AddGlobalAdminGrant(ctx context.Context, grant GlobalAdminGrant) error
	FindMembershipByUser(ctx context.Context, userID snowflake.ID) (*OrganizationMember, error)
	IsMember(ctx context.Context, orgID snowflake.ID, userID snowflake.ID) (bool, error)
	GetOrganization(ctx context.Context, orgID snowflake.ID) (*Organization, error)
	UpdatePlan(ctx context.Context, orgID snowflake.ID, tier string, planKey string) error
}

package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleOwner        = "owner"
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleInvestigator = "investigator"
	RoleVendor       = "vendor"
)

// ValidRole reports whether role is one of the known membership roles.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleManager, RoleInvestigator, RoleVendor:
		return true
	default:
		return false
	}
}

// Membership is the resolved tenant binding for a user.
type Membership struct {
	OrgID snowflake.ID
	Role  string
}

type Service interface {
	// ProvisionSignup atomically creates an organization, an owner membership
	// and the baseline global admin grant for a first-time user.
	ProvisionSignup(ctx context.Context, userID snowflake.ID, req ProvisionRequest) (*OrganizationResponse, error)
	// ResolveMembership returns the user's tenant binding, or ErrNotAMember.
	ResolveMembership(ctx context.Context, userID snowflake.ID) (*Membership, error)
	IsMember(ctx context.Context, orgID snowflake.ID, userID snowflake.ID) (bool, error)
	GetByID(ctx context.Context, id string) (*OrganizationResponse, error)
	// ApplyCheckoutProduct records the plan resulting from a checkout-completed
	// product identifier. Unknown products map to the lowest tier; the call
	// never fails on an unmapped identifier.
	ApplyCheckoutProduct(ctx context.Context, orgID snowflake.ID, productID string) error
}

type ProvisionRequest struct {
	Name string
}

type OrganizationResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Slug               string `json:"slug"`
	SubscriptionTier   string `json:"subscription_tier"`
	SubscriptionStatus string `json:"subscription_status"`
	PlanKey            string `json:"plan_key"`
}

var (
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidUser         = errors.New("invalid_user")
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidRole         = errors.New("invalid_role")

	// ErrNotAMember is a terminal authorization failure. Callers must not
	// surface tenant details alongside it.
	ErrNotAMember = errors.New("not_a_member")
)

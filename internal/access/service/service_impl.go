package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/access/domain"
	capabilitydomain "github.com/casetrail/casetrail/internal/capability/domain"
	enforcementdomain "github.com/casetrail/casetrail/internal/enforcement/domain"
	orgdomain "github.com/casetrail/casetrail/internal/organization/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// maxChainDepth bounds the walk. The deepest real chain is four hops;
// anything longer means a resolver produced a cycle.
const maxChainDepth = 8

type Params struct {
	fx.In

	Log           *zap.Logger
	Registry      *domain.Registry
	Organizations orgdomain.Service
	Capabilities  capabilitydomain.Service
	Enforcement   enforcementdomain.Service
}

type Service struct {
	log          *zap.Logger
	registry     *domain.Registry
	orgs         orgdomain.Service
	capabilities capabilitydomain.Service
	enforcement  enforcementdomain.Service
}

func NewService(p Params) domain.Service {
	return &Service{
		log:          p.Log.Named("access.service"),
		registry:     p.Registry,
		orgs:         p.Organizations,
		capabilities: p.Capabilities,
		enforcement:  p.Enforcement,
	}
}

func (s *Service) Evaluate(ctx context.Context, principal domain.Principal, ref domain.Ref, action domain.Action) (*domain.Decision, error) {
	if principal.Anonymous() {
		s.record(ctx, 0, nil, principal, action, true, "unauthenticated")
		return nil, domain.ErrUnauthenticated
	}

	target, orgID, caseID, err := s.walk(ctx, ref)
	if err != nil {
		if err == domain.ErrBrokenChain || err == domain.ErrUnknownResourceType {
			s.record(ctx, orgID, caseID, principal, action, true, err.Error())
		}
		return nil, err
	}

	membership, err := s.orgs.ResolveMembership(ctx, principal.UserID)
	if err != nil {
		s.record(ctx, orgID, caseID, principal, action, true, "no membership")
		return nil, domain.ErrNotAMember
	}
	if membership.OrgID != orgID {
		// Cross-tenant probes read exactly like non-membership; nothing
		// about the resource leaks.
		s.record(ctx, orgID, caseID, principal, action, true, "membership in different organization")
		return nil, domain.ErrNotAMember
	}

	allowed, err := s.capabilities.Can(ctx, orgID, membership.Role, action.Feature)
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.record(ctx, orgID, caseID, principal, action, true, "capability denied")
		return nil, domain.ErrForbidden
	}

	if action.Mutation && target.CreatedBy != nil &&
		*target.CreatedBy != principal.UserID && !elevatedRole(membership.Role) {
		s.record(ctx, orgID, caseID, principal, action, true, "mutation restricted to creator or elevated role")
		return nil, domain.ErrForbidden
	}

	if action.Mutation {
		s.record(ctx, orgID, caseID, principal, action, false, "allowed")
	}
	return &domain.Decision{
		Allowed: true,
		OrgID:   orgID,
		Role:    membership.Role,
		Reason:  "allowed",
	}, nil
}

// walk resolves ref up to its organization root. It returns the target node,
// the owning organization and the case the chain passed through, if any.
// Any missing hop or org mismatch along the way breaks the chain.
func (s *Service) walk(ctx context.Context, ref domain.Ref) (*domain.Node, snowflake.ID, *snowflake.ID, error) {
	var (
		target *domain.Node
		orgID  snowflake.ID
		caseID *snowflake.ID
	)

	cur := ref
	for depth := 0; ; depth++ {
		if depth >= maxChainDepth {
			return nil, orgID, caseID, domain.ErrBrokenChain
		}
		resolver, ok := s.registry.Resolver(cur.Type)
		if !ok {
			return nil, orgID, caseID, domain.ErrUnknownResourceType
		}
		node, err := resolver.Resolve(ctx, cur.ID)
		if err != nil {
			return nil, orgID, caseID, err
		}
		if node == nil {
			return nil, orgID, caseID, domain.ErrBrokenChain
		}
		if target == nil {
			target = node
			orgID = node.OrgID
		} else if node.OrgID != orgID {
			return nil, orgID, caseID, domain.ErrBrokenChain
		}
		if node.Ref.Type == domain.TypeCase {
			id := node.Ref.ID
			caseID = &id
		}
		if node.Parent == nil {
			return target, orgID, caseID, nil
		}
		cur = *node.Parent
	}
}

func elevatedRole(role string) bool {
	switch role {
	case orgdomain.RoleOwner, orgdomain.RoleAdmin, orgdomain.RoleManager:
		return true
	default:
		return false
	}
}

// record appends the decision after it is made. Failures are already
// logged and retried inside the enforcement service; the decision stands
// either way.
func (s *Service) record(ctx context.Context, orgID snowflake.ID, caseID *snowflake.ID, principal domain.Principal, action domain.Action, blocked bool, reason string) {
	if orgID == 0 {
		return
	}
	var userID *snowflake.ID
	if !principal.Anonymous() {
		id := principal.UserID
		userID = &id
	}
	_, _ = s.enforcement.Record(ctx, enforcementdomain.Entry{
		OrgID:           orgID,
		CaseID:          caseID,
		UserID:          userID,
		ActionType:      action.Feature,
		EnforcementType: "access_control",
		WasBlocked:      blocked,
		Reason:          reason,
	})
}

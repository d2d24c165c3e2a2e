// Package domain contains the typed resource-chain model used for
// authorization. Every protected resource hangs off an organization through
// a chain of ancestors, and authorization walks that chain instead of
// trusting an org_id column on the leaf.
package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// ResourceType names a chain-resolvable resource kind.
type ResourceType string

const (
	TypeOrganization    ResourceType = "organization"
	TypeCase            ResourceType = "case"
	TypeSubject         ResourceType = "subject"
	TypeAttachment      ResourceType = "attachment"
	TypeCaseUpdate      ResourceType = "case_update"
	TypeBillingItem     ResourceType = "billing_item"
	TypeInvoice         ResourceType = "invoice"
	TypeRetainerEntry   ResourceType = "retainer_entry"
	TypeCaseService     ResourceType = "case_service"
	TypeServiceInstance ResourceType = "service_instance"
)

// Ref identifies one resource in a chain.
type Ref struct {
	Type ResourceType
	ID   snowflake.ID
}

// Node is one resolved hop. Parent is nil at the organization root.
// CreatedBy is set when the resource declares a creator, which gates
// mutations to the creator or an elevated role.
type Node struct {
	Ref       Ref
	OrgID     snowflake.ID
	Parent    *Ref
	CreatedBy *snowflake.ID
}

// ChainResolver resolves one resource type to its chain node. A missing or
// soft-deleted resource resolves to (nil, nil); resolvers never guess.
type ChainResolver interface {
	Resolve(ctx context.Context, id snowflake.ID) (*Node, error)
}

// Registry maps resource types to their resolvers so new resource kinds
// plug into the same chain walk.
type Registry struct {
	resolvers map[ResourceType]ChainResolver
}

func NewRegistry() *Registry {
	return &Registry{resolvers: make(map[ResourceType]ChainResolver)}
}

func (r *Registry) Register(t ResourceType, resolver ChainResolver) {
	r.resolvers[t] = resolver
}

func (r *Registry) Resolver(t ResourceType) (ChainResolver, bool) {
	resolver, ok := r.resolvers[t]
	return resolver, ok
}

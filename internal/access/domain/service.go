package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Principal is the caller identity. A zero UserID is anonymous.
type Principal struct {
	UserID snowflake.ID
}

func (p Principal) Anonymous() bool { return p.UserID == 0 }

// Action is what the principal wants to do to the referenced resource.
// Feature is a capability matrix key; Mutation additionally applies the
// creator restriction where the resource declares a creator.
type Action struct {
	Feature  string
	Mutation bool
}

// Decision is the outcome of one evaluation.
type Decision struct {
	Allowed bool
	OrgID   snowflake.ID
	Role    string
	Reason  string
}

type Service interface {
	// Evaluate authorizes principal for action on the resource chain rooted
	// at ref. It is read-only and safe under unlimited concurrency; denials
	// and allowed mutations are appended to the enforcement log after the
	// decision, never influencing it.
	Evaluate(ctx context.Context, principal Principal, ref Ref, action Action) (*Decision, error)
}

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotAMember      = errors.New("not_a_member")
	ErrForbidden       = errors.New("forbidden")

	// ErrBrokenChain reports a missing or soft-deleted ancestor. It surfaces
	// as a forbidden outcome; authorization never confirms whether a
	// resource exists.
	ErrBrokenChain = errors.New("broken_resource_chain")

	ErrUnknownResourceType = errors.New("unknown_resource_type")
)

// Package authz is the single source of truth for role-based
// visibility. Every screen and command consults Check instead of
// testing role membership ad hoc.
package authz

import (
	"github.com/openclassroom/client/internal/session"
	"github.com/openclassroom/client/types"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Deny means the caller lacks the capability. Consumers hide or
	// disable the action; denial is not an error.
	Deny Decision = iota

	// Allow means the caller holds the capability.
	Allow

	// Pending means the session is still loading and no user is known.
	// Consumers render neutral/loading UI, never an implicit allow or
	// deny.
	Pending
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Capability is the condition a caller must satisfy. The zero list of
// roles means "any authenticated user"; otherwise the user must hold at
// least one of the listed roles. Admin is not implicitly granted other
// roles' capabilities — a widened rule must list every accepted role.
type Capability struct {
	roles []types.Role
}

// Authenticated is the capability held by any signed-in user.
func Authenticated() Capability {
	return Capability{}
}

// AnyOf is the capability held by users with at least one of the given
// roles.
func AnyOf(roles ...types.Role) Capability {
	return Capability{roles: roles}
}

// Check decides whether the session satisfies the capability. It is a
// pure function of its inputs.
func Check(snap session.Snapshot, capability Capability) Decision {
	if snap.User == nil {
		if snap.Loading {
			return Pending
		}
		return Deny
	}

	if len(capability.roles) == 0 {
		return Allow
	}
	for _, role := range capability.roles {
		if snap.User.HasRole(role) {
			return Allow
		}
	}
	return Deny
}

// Package identity carries the per-request actor descriptor.
package identity

import "context"

// Role is the account role that gates what an actor may do.
type Role string

const (
	RoleAdmin           Role = "admin"
	RolePropertyCompany Role = "property_company"
	RoleLandlord        Role = "landlord"
	RoleStaff           Role = "staff"
)

// ValidRoles is the set of allowed roles.
var ValidRoles = []Role{RoleAdmin, RolePropertyCompany, RoleLandlord, RoleStaff}

// IsValid checks if a role is recognized.
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Actor identifies who is performing an operation. ParentID links staff
// accounts to a parent company; delegation through it is not implemented,
// ownership checks match on ID only.
type Actor struct {
	ID       int64
	Role     Role
	ParentID *int64
}

// IsAdmin reports whether the actor bypasses ownership checks.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanCreate reports whether the actor's role may create top-level records.
// Staff can read and update within their scope but never create.
func (a Actor) CanCreate() bool {
	switch a.Role {
	case RoleAdmin, RolePropertyCompany, RoleLandlord:
		return true
	}
	return false
}

type contextKey struct{}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// ActorFromContext returns the actor stored on the context, if any.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(contextKey{}).(Actor)
	return a, ok
}

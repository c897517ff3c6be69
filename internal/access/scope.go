package access

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/rentalhub/rentalhub/internal/identity"
)

// Scope conditions narrow collection queries to the actor's visibility set.
// A nil return means no filtering (admin). Repositories append the scope
// condition after every caller-supplied filter, so filters can only narrow
// the visible set, never widen it.

// PropertyScope limits a properties query to rows owned by the actor.
func PropertyScope(actor identity.Actor) sq.Sqlizer {
	if actor.IsAdmin() {
		return nil
	}
	return sq.Eq{"properties.owner_id": actor.ID}
}

// LeaseScope limits a leases query to leases on properties owned by the actor.
func LeaseScope(actor identity.Actor) sq.Sqlizer {
	if actor.IsAdmin() {
		return nil
	}
	return sq.Expr(
		"leases.property_id IN (SELECT id FROM properties WHERE owner_id = ?)",
		actor.ID,
	)
}

// MaintenanceScope limits a maintenance query to requests on owned properties.
func MaintenanceScope(actor identity.Actor) sq.Sqlizer {
	if actor.IsAdmin() {
		return nil
	}
	return sq.Expr(
		"maintenance_requests.property_id IN (SELECT id FROM properties WHERE owner_id = ?)",
		actor.ID,
	)
}

// TenantScope limits a tenants query to tenants holding at least one lease
// on a property owned by the actor. Tenants have no owner column; visibility
// is derived by traversing their lease set.
func TenantScope(actor identity.Actor) sq.Sqlizer {
	if actor.IsAdmin() {
		return nil
	}
	return sq.Expr(
		`EXISTS (SELECT 1 FROM leases l
			JOIN properties p ON p.id = l.property_id
			WHERE l.tenant_id = tenants.id AND p.owner_id = ?)`,
		actor.ID,
	)
}

// PaymentScope limits a payments query to payments on owned properties.
func PaymentScope(actor identity.Actor) sq.Sqlizer {
	if actor.IsAdmin() {
		return nil
	}
	return sq.Expr(
		`payments.lease_id IN (SELECT l.id FROM leases l
			JOIN properties p ON p.id = l.property_id
			WHERE p.owner_id = ?)`,
		actor.ID,
	)
}

package access

import (
	"database/sql"
	"fmt"

	"github.com/rentalhub/rentalhub/internal/errs"
)

// SQLResolver resolves ownership chains against the SQLite schema.
type SQLResolver struct {
	db *sql.DB
}

// NewSQLResolver creates a resolver over the given database.
func NewSQLResolver(db *sql.DB) *SQLResolver {
	return &SQLResolver{db: db}
}

var _ OwnerResolver = (*SQLResolver)(nil)

// PropertyOwner walks the ownership chain for a single-property resource.
func (r *SQLResolver) PropertyOwner(kind Kind, id int64) (int64, error) {
	var query string
	switch kind {
	case KindProperty:
		query = `SELECT owner_id FROM properties WHERE id = ?`
	case KindLease:
		query = `SELECT p.owner_id FROM leases l
			JOIN properties p ON p.id = l.property_id
			WHERE l.id = ?`
	case KindMaintenance:
		query = `SELECT p.owner_id FROM maintenance_requests m
			JOIN properties p ON p.id = m.property_id
			WHERE m.id = ?`
	case KindPayment:
		query = `SELECT p.owner_id FROM payments pay
			JOIN leases l ON l.id = pay.lease_id
			JOIN properties p ON p.id = l.property_id
			WHERE pay.id = ?`
	default:
		return 0, errs.Newf(errs.EInternal, "unresolvable resource kind %q", kind)
	}

	var owner int64
	err := r.db.QueryRow(query, id).Scan(&owner)
	if err == sql.ErrNoRows {
		return 0, errs.Newf(errs.ENotFound, "%s %d not found", kind, id)
	}
	if err != nil {
		return 0, errs.Wrap(err, fmt.Sprintf("resolving %s owner", kind))
	}
	return owner, nil
}

// TenantOwners returns the distinct owners of properties leased to a tenant.
// A tenant with no leases exists but is visible only to admins.
func (r *SQLResolver) TenantOwners(id int64) ([]int64, error) {
	var exists int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM tenants WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return nil, errs.Wrap(err, "checking tenant")
	}
	if exists == 0 {
		return nil, errs.Newf(errs.ENotFound, "tenant %d not found", id)
	}

	rows, err := r.db.Query(`SELECT DISTINCT p.owner_id FROM leases l
		JOIN properties p ON p.id = l.property_id
		WHERE l.tenant_id = ?`, id)
	if err != nil {
		return nil, errs.Wrap(err, "resolving tenant owners")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var owners []int64
	for rows.Next() {
		var owner int64
		if err := rows.Scan(&owner); err != nil {
			return nil, errs.Wrap(err, "scanning owner")
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterating owners")
	}
	return owners, nil
}

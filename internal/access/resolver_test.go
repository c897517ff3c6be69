package access

import (
	"database/sql"
	"path/filepath"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/rentalhub/rentalhub/internal/db"
	"github.com/rentalhub/rentalhub/internal/errs"
	"github.com/rentalhub/rentalhub/internal/identity"
)

// fixtures carries ids seeded by seedFixtures.
type fixtures struct {
	landlordA, landlordB  int64
	propertyA, propertyB  int64
	tenantA, tenantOrphan int64
	leaseA, maintenanceB  int64
	paymentA              int64
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if cerr := d.Close(); cerr != nil {
			t.Errorf("close db: %v", cerr)
		}
	})
	return d
}

func seedFixtures(t *testing.T, d *sql.DB) fixtures {
	t.Helper()
	var f fixtures
	f.landlordA = seedUser(t, d, "a@example.com", "landlord")
	f.landlordB = seedUser(t, d, "b@example.com", "landlord")
	f.propertyA = seedProperty(t, d, "Unit A", f.landlordA)
	f.propertyB = seedProperty(t, d, "Unit B", f.landlordB)
	f.tenantA = seedTenant(t, d, "tenant-a@example.com")
	f.tenantOrphan = seedTenant(t, d, "orphan@example.com")
	f.leaseA = seedLease(t, d, f.propertyA, f.tenantA)
	f.maintenanceB = seedMaintenance(t, d, f.propertyB, f.landlordB)
	f.paymentA = seedPayment(t, d, f.leaseA)
	return f
}

func seedUser(t *testing.T, d *sql.DB, email, role string) int64 {
	t.Helper()
	res, err := d.Exec(
		`INSERT INTO users (email, password, first_name, last_name, role) VALUES (?, 'x', 'Test', 'User', ?)`,
		email, role,
	)
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return lastID(t, res)
}

func seedProperty(t *testing.T, d *sql.DB, name string, ownerID int64) int64 {
	t.Helper()
	res, err := d.Exec(
		`INSERT INTO properties (name, type, address, city, state, zip_code, rent_amount, deposit_amount, owner_id)
		VALUES (?, 'apartment', '1 Main St', 'Austin', 'TX', '78701', 1500, 1500, ?)`,
		name, ownerID,
	)
	if err != nil {
		t.Fatalf("seed property %s: %v", name, err)
	}
	return lastID(t, res)
}

func seedTenant(t *testing.T, d *sql.DB, email string) int64 {
	t.Helper()
	res, err := d.Exec(
		`INSERT INTO tenants (first_name, last_name, email, phone, date_of_birth, employment_status,
			monthly_income, emergency_contact, emergency_contact_phone)
		VALUES ('Terry', 'Tenant', ?, '555-0100', '1990-01-01', 'employed', 6000, 'Pat', '555-0101')`,
		email,
	)
	if err != nil {
		t.Fatalf("seed tenant %s: %v", email, err)
	}
	return lastID(t, res)
}

func seedLease(t *testing.T, d *sql.DB, propertyID, tenantID int64) int64 {
	t.Helper()
	res, err := d.Exec(
		`INSERT INTO leases (property_id, tenant_id, start_date, end_date, rent_amount, deposit_amount, payment_due_day, status)
		VALUES (?, ?, '2026-01-01', '2026-12-31', 1500, 1500, 1, 'pending')`,
		propertyID, tenantID,
	)
	if err != nil {
		t.Fatalf("seed lease: %v", err)
	}
	return lastID(t, res)
}

func seedMaintenance(t *testing.T, d *sql.DB, propertyID, reporterID int64) int64 {
	t.Helper()
	res, err := d.Exec(
		`INSERT INTO maintenance_requests (property_id, reported_by, title, description)
		VALUES (?, ?, 'Leak', 'Kitchen sink leaks')`,
		propertyID, reporterID,
	)
	if err != nil {
		t.Fatalf("seed maintenance: %v", err)
	}
	return lastID(t, res)
}

func seedPayment(t *testing.T, d *sql.DB, leaseID int64) int64 {
	t.Helper()
	res, err := d.Exec(
		`INSERT INTO payments (lease_id, amount, payment_method, payment_type) VALUES (?, 1500, 'check', 'rent')`,
		leaseID,
	)
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return lastID(t, res)
}

func lastID(t *testing.T, res sql.Result) int64 {
	t.Helper()
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}
	return id
}

func TestSQLResolverPropertyOwner(t *testing.T) {
	d := openTestDB(t)
	f := seedFixtures(t, d)
	r := NewSQLResolver(d)

	tests := []struct {
		name      string
		kind      Kind
		id        int64
		wantOwner int64
		wantCode  string
	}{
		{"property resolves directly", KindProperty, f.propertyA, f.landlordA, ""},
		{"lease resolves through property", KindLease, f.leaseA, f.landlordA, ""},
		{"maintenance resolves through property", KindMaintenance, f.maintenanceB, f.landlordB, ""},
		{"payment resolves through lease and property", KindPayment, f.paymentA, f.landlordA, ""},
		{"absent property", KindProperty, 9999, 0, errs.ENotFound},
		{"absent lease", KindLease, 9999, 0, errs.ENotFound},
		{"absent maintenance", KindMaintenance, 9999, 0, errs.ENotFound},
		{"absent payment", KindPayment, 9999, 0, errs.ENotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, err := r.PropertyOwner(tt.kind, tt.id)
			if got := errs.ErrorCode(err); got != tt.wantCode {
				t.Fatalf("code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
			if tt.wantCode == "" && owner != tt.wantOwner {
				t.Errorf("owner = %d, want %d", owner, tt.wantOwner)
			}
		})
	}
}

func TestSQLResolverTenantOwners(t *testing.T) {
	d := openTestDB(t)
	f := seedFixtures(t, d)
	r := NewSQLResolver(d)

	owners, err := r.TenantOwners(f.tenantA)
	if err != nil {
		t.Fatalf("tenant owners: %v", err)
	}
	if len(owners) != 1 || owners[0] != f.landlordA {
		t.Errorf("owners = %v, want [%d]", owners, f.landlordA)
	}

	owners, err = r.TenantOwners(f.tenantOrphan)
	if err != nil {
		t.Fatalf("orphan tenant: %v", err)
	}
	if len(owners) != 0 {
		t.Errorf("orphan owners = %v, want none", owners)
	}

	_, err = r.TenantOwners(9999)
	if errs.ErrorCode(err) != errs.ENotFound {
		t.Errorf("absent tenant: got %v, want not found", err)
	}
}

// TestScopeOwnershipIsolation checks that scope conditions keep two owners'
// rows disjoint across every collection, and that admin scopes are nil.
func TestScopeOwnershipIsolation(t *testing.T) {
	d := openTestDB(t)
	f := seedFixtures(t, d)

	actorA := identity.Actor{ID: f.landlordA, Role: identity.RoleLandlord}
	actorB := identity.Actor{ID: f.landlordB, Role: identity.RoleLandlord}
	admin := identity.Actor{ID: 1, Role: identity.RoleAdmin}

	tests := []struct {
		name   string
		table  string
		scope  func(identity.Actor) sq.Sqlizer
		countA int
		countB int
		total  int
	}{
		{"properties", "properties", PropertyScope, 1, 1, 2},
		{"leases", "leases", LeaseScope, 1, 0, 1},
		{"maintenance", "maintenance_requests", MaintenanceScope, 0, 1, 1},
		{"tenants", "tenants", TenantScope, 1, 0, 2},
		{"payments", "payments", PaymentScope, 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if cond := tt.scope(admin); cond != nil {
				t.Error("admin scope should be nil")
			}
			if got := scopedCount(t, d, tt.table, tt.scope(actorA)); got != tt.countA {
				t.Errorf("actor A sees %d rows, want %d", got, tt.countA)
			}
			if got := scopedCount(t, d, tt.table, tt.scope(actorB)); got != tt.countB {
				t.Errorf("actor B sees %d rows, want %d", got, tt.countB)
			}
			if got := scopedCount(t, d, tt.table, nil); got != tt.total {
				t.Errorf("unscoped count %d, want %d", got, tt.total)
			}
		})
	}
}

func scopedCount(t *testing.T, d *sql.DB, table string, cond sq.Sqlizer) int {
	t.Helper()
	q := sq.Select("COUNT(*)").From(table)
	if cond != nil {
		q = q.Where(cond)
	}
	query, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("building query: %v", err)
	}
	var count int
	if err := d.QueryRow(query, args...).Scan(&count); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return count
}

// TestScopeAppliesAfterFilters verifies a caller filter cannot widen the
// visible set: filtering on another owner's status still yields nothing.
func TestScopeAppliesAfterFilters(t *testing.T) {
	d := openTestDB(t)
	f := seedFixtures(t, d)

	actorA := identity.Actor{ID: f.landlordA, Role: identity.RoleLandlord}

	q := sq.Select("COUNT(*)").From("properties").
		Where(sq.Eq{"properties.id": f.propertyB}). // caller filter naming B's row
		Where(PropertyScope(actorA))               // scope appended last

	query, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("building query: %v", err)
	}
	var count int
	if err := d.QueryRow(query, args...).Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 0 {
		t.Errorf("filter widened scope: got %d rows, want 0", count)
	}
}

package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "creates new database",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "rentalhub.db")
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "a", "b", "rentalhub.db")
			},
		},
		{
			name: "opens existing database",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "rentalhub.db")
				d, err := Open(path)
				if err != nil {
					t.Fatalf("setup: %v", err)
				}
				if err := d.Close(); err != nil {
					t.Fatalf("setup close: %v", err)
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			d, err := Open(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() {
				if err := d.Close(); err != nil {
					t.Errorf("close: %v", err)
				}
			}()

			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Error("database file was not created")
			}
		})
	}
}

func TestWALMode(t *testing.T) {
	d := openTestDB(t)

	var mode string
	if err := d.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}
}

func TestForeignKeys(t *testing.T) {
	d := openTestDB(t)

	var fk int
	if err := d.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestMigrations(t *testing.T) {
	tests := []struct {
		name  string
		table string
		cols  []string
	}{
		{
			name:  "users table exists",
			table: "users",
			cols:  []string{"id", "email", "password", "first_name", "last_name", "role", "company_name", "phone", "address", "is_active", "parent_id", "created_at", "updated_at"},
		},
		{
			name:  "properties table exists",
			table: "properties",
			cols:  []string{"id", "name", "type", "address", "city", "state", "zip_code", "bedrooms", "bathrooms", "square_footage", "rent_amount", "deposit_amount", "status", "description", "amenities", "images", "owner_id", "created_at", "updated_at"},
		},
		{
			name:  "tenants table exists",
			table: "tenants",
			cols:  []string{"id", "first_name", "last_name", "email", "phone", "date_of_birth", "employment_status", "employer_name", "monthly_income", "credit_score", "emergency_contact", "emergency_contact_phone", "status", "notes", "created_at", "updated_at"},
		},
		{
			name:  "leases table exists",
			table: "leases",
			cols:  []string{"id", "property_id", "tenant_id", "start_date", "end_date", "rent_amount", "deposit_amount", "payment_due_day", "late_fee_percentage", "late_fee_grace_period", "status", "terms", "notes", "created_at", "updated_at"},
		},
		{
			name:  "maintenance_requests table exists",
			table: "maintenance_requests",
			cols:  []string{"id", "property_id", "reported_by", "assigned_to", "title", "description", "priority", "status", "reported_date", "scheduled_date", "completed_date", "cost", "notes", "created_at", "updated_at"},
		},
		{
			name:  "payments table exists",
			table: "payments",
			cols:  []string{"id", "lease_id", "amount", "payment_date", "payment_method", "payment_type", "status", "transaction_id", "notes", "created_at", "updated_at"},
		},
	}

	d := openTestDB(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := tableColumns(t, d, tt.table)
			if len(cols) != len(tt.cols) {
				t.Fatalf("got %d columns, want %d: %v", len(cols), len(tt.cols), cols)
			}
			for i, want := range tt.cols {
				if cols[i] != want {
					t.Errorf("column %d = %q, want %q", i, cols[i], want)
				}
			}
		})
	}
}

func TestStatusConstraints(t *testing.T) {
	d := openTestDB(t)

	ownerID := insertTestOwner(t, d)

	insert := `INSERT INTO properties (name, type, address, city, state, zip_code, rent_amount, deposit_amount, status, owner_id)
		VALUES (?, 'house', '1 Main St', 'Austin', 'TX', '78701', 1500, 1500, ?, ?)`

	tests := []struct {
		name    string
		status  string
		wantErr bool
	}{
		{"available is valid", "available", false},
		{"reserved is valid", "reserved", false},
		{"rented is valid", "rented", false},
		{"maintenance is valid", "maintenance", false},
		{"unknown status rejected", "vacant", true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Exec(insert, fmt.Sprintf("Unit %d", i), tt.status, ownerID)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRoleConstraint(t *testing.T) {
	d := openTestDB(t)

	_, err := d.Exec(
		`INSERT INTO users (email, password, first_name, last_name, role) VALUES (?, ?, ?, ?, ?)`,
		"bad@example.com", "x", "Bad", "Role", "superuser",
	)
	if err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentalhub.db")

	// Open twice — migrations should not fail on second run
	d1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := d1.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}

	d2, err := Open(path)
	if err != nil {
		t.Fatalf("second open (idempotency): %v", err)
	}
	if err := d2.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	p, err := DefaultPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(p) != "rentalhub.db" {
		t.Errorf("expected filename rentalhub.db, got %s", filepath.Base(p))
	}

	dir := filepath.Base(filepath.Dir(p))
	if dir != ".rentalhub" {
		t.Errorf("expected directory .rentalhub, got %s", dir)
	}
}

// openTestDB creates a temporary database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rentalhub.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})
	return d
}

// insertTestOwner inserts a landlord user and returns its id.
func insertTestOwner(t *testing.T, d *sql.DB) int64 {
	t.Helper()
	res, err := d.Exec(
		`INSERT INTO users (email, password, first_name, last_name, role) VALUES (?, ?, ?, ?, ?)`,
		fmt.Sprintf("owner-%s@example.com", t.Name()), "hash", "Test", "Owner", "landlord",
	)
	if err != nil {
		t.Fatalf("insert owner: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("owner id: %v", err)
	}
	return id
}

// tableColumns returns column names for a table using PRAGMA table_info.
func tableColumns(t *testing.T, d *sql.DB, table string) []string {
	t.Helper()
	rows, err := d.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		t.Fatalf("pragma table_info(%s): %v", table, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			t.Errorf("close rows: %v", err)
		}
	}()

	var cols []string
	for rows.Next() {
		var cid int
		var name, typ string
		var notnull int
		var dflt *string
		var pk int
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols = append(cols, name)
	}
	return cols
}

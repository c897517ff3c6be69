package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
// Status and role columns are CHECK-constrained so unknown values are
// rejected at the storage layer too, not just by the Go enums.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		email        TEXT    NOT NULL UNIQUE,
		password     TEXT    NOT NULL,
		first_name   TEXT    NOT NULL,
		last_name    TEXT    NOT NULL,
		role         TEXT    NOT NULL CHECK (role IN ('admin', 'property_company', 'landlord', 'staff')),
		company_name TEXT,
		phone        TEXT,
		address      TEXT,
		is_active    INTEGER NOT NULL DEFAULT 1,
		parent_id    INTEGER REFERENCES users(id),
		created_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		name           TEXT    NOT NULL,
		type           TEXT    NOT NULL CHECK (type IN ('apartment', 'house', 'commercial', 'land')),
		address        TEXT    NOT NULL,
		city           TEXT    NOT NULL,
		state          TEXT    NOT NULL,
		zip_code       TEXT    NOT NULL,
		bedrooms       INTEGER,
		bathrooms      REAL,
		square_footage INTEGER,
		rent_amount    REAL    NOT NULL,
		deposit_amount REAL    NOT NULL,
		status         TEXT    NOT NULL DEFAULT 'available' CHECK (status IN ('available', 'rented', 'maintenance', 'reserved')),
		description    TEXT,
		amenities      TEXT,
		images         TEXT,
		owner_id       INTEGER NOT NULL REFERENCES users(id),
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS tenants (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name      TEXT    NOT NULL,
		last_name       TEXT    NOT NULL,
		email           TEXT    NOT NULL UNIQUE,
		phone           TEXT    NOT NULL,
		date_of_birth   TEXT    NOT NULL,
		employment_status TEXT  NOT NULL CHECK (employment_status IN ('employed', 'self-employed', 'unemployed', 'retired')),
		employer_name   TEXT,
		monthly_income  REAL    NOT NULL,
		credit_score    INTEGER,
		emergency_contact       TEXT NOT NULL,
		emergency_contact_phone TEXT NOT NULL,
		status          TEXT    NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected', 'active', 'inactive')),
		notes           TEXT,
		created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at      DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS leases (
		id                    INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id           INTEGER NOT NULL REFERENCES properties(id),
		tenant_id             INTEGER NOT NULL REFERENCES tenants(id),
		start_date            TEXT    NOT NULL,
		end_date              TEXT    NOT NULL,
		rent_amount           REAL    NOT NULL,
		deposit_amount        REAL    NOT NULL,
		payment_due_day       INTEGER NOT NULL CHECK (payment_due_day >= 1 AND payment_due_day <= 31),
		late_fee_percentage   REAL    NOT NULL DEFAULT 5.0,
		late_fee_grace_period INTEGER NOT NULL DEFAULT 5,
		status                TEXT    NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'pending', 'active', 'expired', 'terminated')),
		terms                 TEXT,
		notes                 TEXT,
		created_at            DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at            DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS maintenance_requests (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id    INTEGER NOT NULL REFERENCES properties(id),
		reported_by    INTEGER NOT NULL REFERENCES users(id),
		assigned_to    INTEGER REFERENCES users(id),
		title          TEXT    NOT NULL,
		description    TEXT    NOT NULL,
		priority       TEXT    NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high', 'urgent')),
		status         TEXT    NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'in_progress', 'completed', 'cancelled')),
		reported_date  DATETIME DEFAULT CURRENT_TIMESTAMP,
		scheduled_date DATETIME,
		completed_date DATETIME,
		cost           REAL,
		notes          TEXT,
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		lease_id       INTEGER NOT NULL REFERENCES leases(id),
		amount         REAL    NOT NULL,
		payment_date   DATETIME DEFAULT CURRENT_TIMESTAMP,
		payment_method TEXT    NOT NULL CHECK (payment_method IN ('credit_card', 'bank_transfer', 'check', 'cash')),
		payment_type   TEXT    NOT NULL CHECK (payment_type IN ('rent', 'deposit', 'late_fee', 'maintenance', 'other')),
		status         TEXT    NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'completed', 'failed', 'refunded')),
		transaction_id TEXT,
		notes          TEXT,
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_owner ON properties(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_leases_property ON leases(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_leases_tenant ON leases(tenant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_maintenance_property ON maintenance_requests(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_lease ON payments(lease_id)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

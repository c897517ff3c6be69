package tenant

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/rentalhub/rentalhub/internal/errs"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, first_name, last_name, email, phone, date_of_birth, employment_status, employer_name, monthly_income, credit_score, emergency_contact, emergency_contact_phone, status, notes, created_at, updated_at`

// Insert stores a new tenant and returns it with generated fields filled in.
func (r *Repository) Insert(t *Tenant) (*Tenant, error) {
	res, err := r.db.Exec(`
		INSERT INTO tenants (
			first_name, last_name, email, phone, date_of_birth,
			employment_status, employer_name, monthly_income, credit_score,
			emergency_contact, emergency_contact_phone, status, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.FirstName, t.LastName, t.Email, t.Phone, t.DateOfBirth,
		t.EmploymentStatus, t.EmployerName, t.MonthlyIncome, t.CreditScore,
		t.EmergencyContact, t.EmergencyContactPhone, t.Status, t.Notes,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, errs.New(errs.EConflict, "a tenant with that email already exists")
		}
		return nil, errs.Wrap(err, "inserting tenant")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errs.Wrap(err, "reading tenant id")
	}
	return r.GetByID(id)
}

// GetByID returns the tenant with the given id.
func (r *Repository) GetByID(id int64) (*Tenant, error) {
	row := r.db.QueryRow(`SELECT `+selectColumns+` FROM tenants WHERE id = ?`, id)
	t, err := scanTenant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.Newf(errs.ENotFound, "tenant %d not found", id)
	}
	if err != nil {
		return nil, errs.Wrap(err, "getting tenant")
	}
	return t, nil
}

type ListOptions struct {
	Status    Status
	MinIncome *float64
	MaxIncome *float64
}

// List returns tenants matching the caller's filters, narrowed by scope.
// A nil scope means unrestricted (admin).
func (r *Repository) List(opts ListOptions, scope sq.Sqlizer) ([]*Tenant, error) {
	q := sq.Select(selectColumns).From("tenants")

	if opts.Status != "" {
		q = q.Where(sq.Eq{"status": string(opts.Status)})
	}
	if opts.MinIncome != nil {
		q = q.Where(sq.GtOrEq{"monthly_income": *opts.MinIncome})
	}
	if opts.MaxIncome != nil {
		q = q.Where(sq.LtOrEq{"monthly_income": *opts.MaxIncome})
	}
	if scope != nil {
		q = q.Where(scope)
	}
	q = q.OrderBy("created_at DESC, id DESC")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "building tenant query")
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, errs.Wrap(err, "listing tenants")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var tenants []*Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, errs.Wrap(err, "scanning tenant")
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterating tenants")
	}
	return tenants, nil
}

// Update persists all mutable fields of t.
func (r *Repository) Update(t *Tenant) (*Tenant, error) {
	res, err := r.db.Exec(`
		UPDATE tenants SET
			first_name = ?, last_name = ?, email = ?, phone = ?, date_of_birth = ?,
			employment_status = ?, employer_name = ?, monthly_income = ?, credit_score = ?,
			emergency_contact = ?, emergency_contact_phone = ?, status = ?, notes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		t.FirstName, t.LastName, t.Email, t.Phone, t.DateOfBirth,
		t.EmploymentStatus, t.EmployerName, t.MonthlyIncome, t.CreditScore,
		t.EmergencyContact, t.EmergencyContactPhone, t.Status, t.Notes,
		t.ID,
	)
	if err != nil {
		return nil, errs.Wrap(err, "updating tenant")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errs.Wrap(err, "checking update result")
	}
	if n == 0 {
		return nil, errs.Newf(errs.ENotFound, "tenant %d not found", t.ID)
	}
	return r.GetByID(t.ID)
}

// Delete removes the tenant with the given id.
func (r *Repository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM tenants WHERE id = ?`, id)
	if err != nil {
		return errs.Wrap(err, "deleting tenant")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errs.Wrap(err, "checking delete result")
	}
	if n == 0 {
		return errs.Newf(errs.ENotFound, "tenant %d not found", id)
	}
	return nil
}

package lease

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/rentalhub/rentalhub/internal/errs"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, property_id, tenant_id, start_date, end_date, rent_amount, deposit_amount, payment_due_day, late_fee_percentage, late_fee_grace_period, status, terms, notes, created_at, updated_at`

// InsertReserving creates the lease and moves its property from
// available to reserved in one transaction. The property update is
// guarded on the current status, so a concurrent lease on the same
// property loses with a conflict instead of double-booking it.
func (r *Repository) InsertReserving(l *Lease) (lease *Lease, err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, errs.Wrap(err, "starting lease transaction")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
		}
	}()

	var exists int
	if err = tx.QueryRow(`SELECT COUNT(1) FROM tenants WHERE id = ?`, l.TenantID).Scan(&exists); err != nil {
		return nil, errs.Wrap(err, "checking tenant")
	}
	if exists == 0 {
		return nil, errs.Newf(errs.ENotFound, "tenant %d not found", l.TenantID)
	}

	res, err := tx.Exec(
		`UPDATE properties SET status = 'reserved', updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = 'available'`,
		l.PropertyID,
	)
	if err != nil {
		return nil, errs.Wrap(err, "reserving property")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errs.Wrap(err, "checking reservation")
	}
	if n == 0 {
		return nil, errs.New(errs.EConflict, "property is not available for lease")
	}

	res, err = tx.Exec(`
		INSERT INTO leases (
			property_id, tenant_id, start_date, end_date, rent_amount,
			deposit_amount, payment_due_day, late_fee_percentage,
			late_fee_grace_period, status, terms, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.PropertyID, l.TenantID, l.StartDate, l.EndDate, l.RentAmount,
		l.DepositAmount, l.PaymentDueDay, l.LateFeePercentage,
		l.LateFeeGracePeriod, l.Status, l.Terms, l.Notes,
	)
	if err != nil {
		return nil, errs.Wrap(err, "inserting lease")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errs.Wrap(err, "reading lease id")
	}
	if err = tx.Commit(); err != nil {
		return nil, errs.Wrap(err, "committing lease")
	}
	return r.GetByID(id)
}

// GetByID returns the lease with the given id.
func (r *Repository) GetByID(id int64) (*Lease, error) {
	row := r.db.QueryRow(`SELECT `+selectColumns+` FROM leases WHERE id = ?`, id)
	l, err := scanLease(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.Newf(errs.ENotFound, "lease %d not found", id)
	}
	if err != nil {
		return nil, errs.Wrap(err, "getting lease")
	}
	return l, nil
}

type ListOptions struct {
	Status     Status
	PropertyID int64
	TenantID   int64
}

// List returns leases matching the caller's filters, narrowed by scope.
// A nil scope means unrestricted (admin).
func (r *Repository) List(opts ListOptions, scope sq.Sqlizer) ([]*Lease, error) {
	q := sq.Select(selectColumns).From("leases")

	if opts.Status != "" {
		q = q.Where(sq.Eq{"status": string(opts.Status)})
	}
	if opts.PropertyID != 0 {
		q = q.Where(sq.Eq{"property_id": opts.PropertyID})
	}
	if opts.TenantID != 0 {
		q = q.Where(sq.Eq{"tenant_id": opts.TenantID})
	}
	if scope != nil {
		q = q.Where(scope)
	}
	q = q.OrderBy("created_at DESC, id DESC")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "building lease query")
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, errs.Wrap(err, "listing leases")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var leases []*Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, errs.Wrap(err, "scanning lease")
		}
		leases = append(leases, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterating leases")
	}
	return leases, nil
}

// Update persists all mutable fields of l.
func (r *Repository) Update(l *Lease) (*Lease, error) {
	res, err := r.db.Exec(`
		UPDATE leases SET
			start_date = ?, end_date = ?, rent_amount = ?, deposit_amount = ?,
			payment_due_day = ?, late_fee_percentage = ?, late_fee_grace_period = ?,
			status = ?, terms = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		l.StartDate, l.EndDate, l.RentAmount, l.DepositAmount,
		l.PaymentDueDay, l.LateFeePercentage, l.LateFeeGracePeriod,
		l.Status, l.Terms, l.Notes,
		l.ID,
	)
	if err != nil {
		return nil, errs.Wrap(err, "updating lease")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errs.Wrap(err, "checking update result")
	}
	if n == 0 {
		return nil, errs.Newf(errs.ENotFound, "lease %d not found", l.ID)
	}
	return r.GetByID(l.ID)
}

// DeleteRestoring removes the lease and returns its property to
// available in one transaction.
func (r *Repository) DeleteRestoring(id int64) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return errs.Wrap(err, "starting lease transaction")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
		}
	}()

	var propertyID int64
	err = tx.QueryRow(`SELECT property_id FROM leases WHERE id = ?`, id).Scan(&propertyID)
	if errors.Is(err, sql.ErrNoRows) {
		return errs.Newf(errs.ENotFound, "lease %d not found", id)
	}
	if err != nil {
		return errs.Wrap(err, "getting lease")
	}

	if _, err = tx.Exec(`DELETE FROM leases WHERE id = ?`, id); err != nil {
		return errs.Wrap(err, "deleting lease")
	}
	if _, err = tx.Exec(
		`UPDATE properties SET status = 'available', updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		propertyID,
	); err != nil {
		return errs.Wrap(err, "releasing property")
	}
	if err = tx.Commit(); err != nil {
		return errs.Wrap(err, "committing lease delete")
	}
	return nil
}

package payment

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

const selectColumns = `id, lease_id, amount, payment_date, payment_method, payment_type, status, transaction_id, notes, created_at, updated_at`

// Insert stores a new payment and returns it with generated fields filled in.
func (r *Repository) Insert(p *Payment) (*Payment, error) {
	res, err := r.db.Exec(`
		INSERT INTO payments (
			lease_id, amount, payment_method, payment_type, status, transaction_id, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.LeaseID, p.Amount, p.PaymentMethod, p.PaymentType, p.Status, p.TransactionID, p.Notes,
	)
	if err != nil {
		return nil, errs.Wrap(err, "inserting payment")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errs.Wrap(err, "reading payment id")
	}
	return r.GetByID(id)
}

// GetByID returns the payment with the given id.
func (r *Repository) GetByID(id int64) (*Payment, error) {
	row := r.db.QueryRow(`SELECT `+selectColumns+` FROM payments WHERE id = ?`, id)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.Newf(errs.ENotFound, "payment %d not found", id)
	}
	if err != nil {
		return nil, errs.Wrap(err, "getting payment")
	}
	return p, nil
}

type ListOptions struct {
	LeaseID int64
	Status  Status
	Type    Type
}

// List returns payments matching the caller's filters, narrowed by scope.
// A nil scope means unrestricted (admin).
func (r *Repository) List(opts ListOptions, scope sq.Sqlizer) ([]*Payment, error) {
	q := sq.Select(selectColumns).From("payments")

	if opts.LeaseID != 0 {
		q = q.Where(sq.Eq{"lease_id": opts.LeaseID})
	}
	if opts.Status != "" {
		q = q.Where(sq.Eq{"status": string(opts.Status)})
	}
	if opts.Type != "" {
		q = q.Where(sq.Eq{"payment_type": string(opts.Type)})
	}
	if scope != nil {
		q = q.Where(scope)
	}
	q = q.OrderBy("payment_date DESC, id DESC")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "building payment query")
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, errs.Wrap(err, "listing payments")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var payments []*Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, errs.Wrap(err, "scanning payment")
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterating payments")
	}
	return payments, nil
}

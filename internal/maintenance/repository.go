package maintenance

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/rentalhub/rentalhub/internal/errs"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, property_id, reported_by, assigned_to, title, description, priority, status, reported_date, scheduled_date, completed_date, cost, notes, created_at, updated_at`

// Insert stores a new request and returns it with generated fields filled in.
func (r *Repository) Insert(m *Request) (*Request, error) {
	res, err := r.db.Exec(`
		INSERT INTO maintenance_requests (
			property_id, reported_by, title, description, priority, status, scheduled_date, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.PropertyID, m.ReportedBy, m.Title, m.Description, m.Priority, m.Status, m.ScheduledDate, m.Notes,
	)
	if err != nil {
		return nil, errs.Wrap(err, "inserting maintenance request")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errs.Wrap(err, "reading request id")
	}
	return r.GetByID(id)
}

// GetByID returns the request with the given id.
func (r *Repository) GetByID(id int64) (*Request, error) {
	row := r.db.QueryRow(`SELECT `+selectColumns+` FROM maintenance_requests WHERE id = ?`, id)
	m, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.Newf(errs.ENotFound, "maintenance request %d not found", id)
	}
	if err != nil {
		return nil, errs.Wrap(err, "getting maintenance request")
	}
	return m, nil
}

type ListOptions struct {
	Status     Status
	Priority   Priority
	PropertyID int64
}

// List returns requests matching the caller's filters, narrowed by scope.
// A nil scope means unrestricted (admin).
func (r *Repository) List(opts ListOptions, scope sq.Sqlizer) ([]*Request, error) {
	q := sq.Select(selectColumns).From("maintenance_requests")

	if opts.Status != "" {
		q = q.Where(sq.Eq{"status": string(opts.Status)})
	}
	if opts.Priority != "" {
		q = q.Where(sq.Eq{"priority": string(opts.Priority)})
	}
	if opts.PropertyID != 0 {
		q = q.Where(sq.Eq{"property_id": opts.PropertyID})
	}
	if scope != nil {
		q = q.Where(scope)
	}
	q = q.OrderBy("created_at DESC, id DESC")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "building maintenance query")
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, errs.Wrap(err, "listing maintenance requests")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var requests []*Request
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, errs.Wrap(err, "scanning maintenance request")
		}
		requests = append(requests, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterating maintenance requests")
	}
	return requests, nil
}

// Update persists the request's descriptive fields. Status moves go
// through Assign, Complete and Cancel.
func (r *Repository) Update(m *Request) (*Request, error) {
	res, err := r.db.Exec(`
		UPDATE maintenance_requests SET
			title = ?, description = ?, priority = ?, scheduled_date = ?,
			notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		m.Title, m.Description, m.Priority, m.ScheduledDate, m.Notes, m.ID,
	)
	if err != nil {
		return nil, errs.Wrap(err, "updating maintenance request")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errs.Wrap(err, "checking update result")
	}
	if n == 0 {
		return nil, errs.Newf(errs.ENotFound, "maintenance request %d not found", m.ID)
	}
	return r.GetByID(m.ID)
}

// Assign sets the assignee and moves the request to in_progress. The
// update is guarded on the current status, so requests already
// completed or cancelled come back as a conflict.
func (r *Repository) Assign(id, assigneeID int64) (*Request, error) {
	res, err := r.db.Exec(`
		UPDATE maintenance_requests
		SET assigned_to = ?, status = 'in_progress', updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status IN ('pending', 'in_progress')`,
		assigneeID, id,
	)
	if err != nil {
		return nil, errs.Wrap(err, "assigning maintenance request")
	}
	return r.guardedResult(res, id)
}

// Complete closes the request, recording completion time and cost.
func (r *Repository) Complete(id int64, cost *float64, notes *string) (*Request, error) {
	res, err := r.db.Exec(`
		UPDATE maintenance_requests
		SET status = 'completed', completed_date = ?, cost = COALESCE(?, cost),
			notes = COALESCE(?, notes), updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status IN ('pending', 'in_progress')`,
		time.Now().UTC(), cost, notes, id,
	)
	if err != nil {
		return nil, errs.Wrap(err, "completing maintenance request")
	}
	return r.guardedResult(res, id)
}

// Cancel closes the request without work done.
func (r *Repository) Cancel(id int64) (*Request, error) {
	res, err := r.db.Exec(`
		UPDATE maintenance_requests
		SET status = 'cancelled', updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status IN ('pending', 'in_progress')`,
		id,
	)
	if err != nil {
		return nil, errs.Wrap(err, "cancelling maintenance request")
	}
	return r.guardedResult(res, id)
}

// guardedResult resolves a status-guarded update: zero rows affected on
// an existing request means it is in a terminal state.
func (r *Repository) guardedResult(res sql.Result, id int64) (*Request, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errs.Wrap(err, "checking update result")
	}
	if n == 0 {
		m, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		return nil, errs.Newf(errs.EConflict, "maintenance request is already %s", m.Status)
	}
	return r.GetByID(id)
}

// Delete removes the request with the given id.
func (r *Repository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM maintenance_requests WHERE id = ?`, id)
	if err != nil {
		return errs.Wrap(err, "deleting maintenance request")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errs.Wrap(err, "checking delete result")
	}
	if n == 0 {
		return errs.Newf(errs.ENotFound, "maintenance request %d not found", id)
	}
	return nil
}

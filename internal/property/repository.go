package property

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/rentalhub/rentalhub/internal/errs"
)

// Repository provides CRUD operations for properties.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a property repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, name, type, address, city, state, zip_code, bedrooms, bathrooms, square_footage, rent_amount, deposit_amount, status, description, amenities, images, owner_id, created_at, updated_at`

// Insert adds a new property and returns it with its generated ID.
func (r *Repository) Insert(p *Property) (*Property, error) {
	var amenities, images interface{}
	if p.Amenities != nil {
		amenities = string(p.Amenities)
	}
	if p.Images != nil {
		images = string(p.Images)
	}

	result, err := r.db.Exec(
		`INSERT INTO properties (name, type, address, city, state, zip_code, bedrooms, bathrooms, square_footage,
			rent_amount, deposit_amount, status, description, amenities, images, owner_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, string(p.Type), p.Address, p.City, p.State, p.ZipCode,
		p.Bedrooms, p.Bathrooms, p.SquareFootage,
		p.RentAmount, p.DepositAmount, string(p.Status),
		p.Description, amenities, images, p.OwnerID,
	)
	if err != nil {
		return nil, errs.Wrap(err, "inserting property")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, errs.Wrap(err, "getting insert id")
	}
	return r.GetByID(id)
}

// GetByID returns a property by its ID.
func (r *Repository) GetByID(id int64) (*Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = ?", selectColumns)
	row := r.db.QueryRow(query, id)

	p, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return nil, errs.Newf(errs.ENotFound, "property %d not found", id)
	}
	if err != nil {
		return nil, errs.Wrap(err, fmt.Sprintf("querying property %d", id))
	}
	return p, nil
}

// ListOptions controls filtering for List. Zero values mean no filter.
type ListOptions struct {
	Status   Status
	Type     Type
	City     string
	MinPrice *float64
	MaxPrice *float64
}

// List returns properties matching the caller's filters, narrowed by scope.
// The scope condition is appended after every filter so it cannot be
// widened; a nil scope means unrestricted (admin).
func (r *Repository) List(opts ListOptions, scope sq.Sqlizer) ([]*Property, error) {
	q := sq.Select(selectColumns).From("properties")

	if opts.Status != "" {
		q = q.Where(sq.Eq{"status": string(opts.Status)})
	}
	if opts.Type != "" {
		q = q.Where(sq.Eq{"type": string(opts.Type)})
	}
	if opts.City != "" {
		q = q.Where(sq.Eq{"city": opts.City})
	}
	if opts.MinPrice != nil {
		q = q.Where(sq.GtOrEq{"rent_amount": *opts.MinPrice})
	}
	if opts.MaxPrice != nil {
		q = q.Where(sq.LtOrEq{"rent_amount": *opts.MaxPrice})
	}
	if scope != nil {
		q = q.Where(scope)
	}
	q = q.OrderBy("created_at DESC, id DESC")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "building property query")
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, errs.Wrap(err, "listing properties")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var properties []*Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, errs.Wrap(err, "scanning property")
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterating properties")
	}
	return properties, nil
}

// Update persists all mutable fields of p.
func (r *Repository) Update(p *Property) (*Property, error) {
	var amenities, images interface{}
	if p.Amenities != nil {
		amenities = string(p.Amenities)
	}
	if p.Images != nil {
		images = string(p.Images)
	}

	result, err := r.db.Exec(
		`UPDATE properties SET name = ?, type = ?, address = ?, city = ?, state = ?, zip_code = ?,
			bedrooms = ?, bathrooms = ?, square_footage = ?, rent_amount = ?, deposit_amount = ?,
			status = ?, description = ?, amenities = ?, images = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.Name, string(p.Type), p.Address, p.City, p.State, p.ZipCode,
		p.Bedrooms, p.Bathrooms, p.SquareFootage, p.RentAmount, p.DepositAmount,
		string(p.Status), p.Description, amenities, images, p.ID,
	)
	if err != nil {
		return nil, errs.Wrap(err, "updating property")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, errs.Wrap(err, "checking rows affected")
	}
	if rows == 0 {
		return nil, errs.Newf(errs.ENotFound, "property %d not found", p.ID)
	}
	return r.GetByID(p.ID)
}

// Delete removes a property by ID.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM properties WHERE id = ?", id)
	if err != nil {
		return errs.Wrap(err, "deleting property")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errs.Wrap(err, "checking rows affected")
	}
	if rows == 0 {
		return errs.Newf(errs.ENotFound, "property %d not found", id)
	}
	return nil
}

// Package property provides the property domain model and data access.
package property

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Status represents where a property is in the rental workflow.
// Moves between available and reserved are driven solely by lease
// creation and deletion; rented and maintenance are set by the
// surrounding business process.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusRented      Status = "rented"
	StatusMaintenance Status = "maintenance"
	StatusReserved    Status = "reserved"
)

// ValidStatus returns true if s is a known property status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusAvailable, StatusRented, StatusMaintenance, StatusReserved:
		return true
	}
	return false
}

// Type categorizes a property.
type Type string

const (
	TypeApartment  Type = "apartment"
	TypeHouse      Type = "house"
	TypeCommercial Type = "commercial"
	TypeLand       Type = "land"
)

// ValidType returns true if t is a known property type.
func ValidType(t string) bool {
	switch Type(t) {
	case TypeApartment, TypeHouse, TypeCommercial, TypeLand:
		return true
	}
	return false
}

// Property represents a rental unit. Amenities and Images are opaque JSON
// blobs carried through unmodified.
type Property struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Type          Type            `json:"type"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	ZipCode       string          `json:"zip_code"`
	Bedrooms      *int64          `json:"bedrooms,omitempty"`
	Bathrooms     *float64        `json:"bathrooms,omitempty"`
	SquareFootage *int64          `json:"square_footage,omitempty"`
	RentAmount    float64         `json:"rent_amount"`
	DepositAmount float64         `json:"deposit_amount"`
	Status        Status          `json:"status"`
	Description   *string         `json:"description,omitempty"`
	Amenities     json.RawMessage `json:"amenities,omitempty"`
	Images        json.RawMessage `json:"images,omitempty"`
	OwnerID       int64           `json:"owner_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// scanProperty scans a property from a database row.
func scanProperty(row interface{ Scan(...interface{}) error }) (*Property, error) {
	var p Property
	var ptype, status string
	var bedrooms, squareFootage sql.NullInt64
	var bathrooms sql.NullFloat64
	var description, amenities, images sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &ptype, &p.Address, &p.City, &p.State, &p.ZipCode,
		&bedrooms, &bathrooms, &squareFootage,
		&p.RentAmount, &p.DepositAmount, &status,
		&description, &amenities, &images,
		&p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Type = Type(ptype)
	p.Status = Status(status)
	if bedrooms.Valid {
		p.Bedrooms = &bedrooms.Int64
	}
	if bathrooms.Valid {
		p.Bathrooms = &bathrooms.Float64
	}
	if squareFootage.Valid {
		p.SquareFootage = &squareFootage.Int64
	}
	if description.Valid {
		p.Description = &description.String
	}
	if amenities.Valid {
		p.Amenities = json.RawMessage(amenities.String)
	}
	if images.Valid {
		p.Images = json.RawMessage(images.String)
	}
	return &p, nil
}

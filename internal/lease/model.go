// Package lease manages lease agreements and the property status
// transitions they drive.
package lease

import (
	"time"
)

// Status tracks a lease through its lifecycle.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusPending    Status = "pending"
	StatusActive     Status = "active"
	StatusExpired    Status = "expired"
	StatusTerminated Status = "terminated"
)

// ValidStatus reports whether s is a known lease status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusDraft, StatusPending, StatusActive, StatusExpired, StatusTerminated:
		return true
	}
	return false
}

type Lease struct {
	ID                 int64     `json:"id"`
	PropertyID         int64     `json:"property_id"`
	TenantID           int64     `json:"tenant_id"`
	StartDate          string    `json:"start_date"`
	EndDate            string    `json:"end_date"`
	RentAmount         float64   `json:"rent_amount"`
	DepositAmount      float64   `json:"deposit_amount"`
	PaymentDueDay      int64     `json:"payment_due_day"`
	LateFeePercentage  float64   `json:"late_fee_percentage"`
	LateFeeGracePeriod int64     `json:"late_fee_grace_period"`
	Status             Status    `json:"status"`
	Terms              *string   `json:"terms"`
	Notes              *string   `json:"notes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func scanLease(row interface{ Scan(...interface{}) error }) (*Lease, error) {
	var l Lease
	err := row.Scan(
		&l.ID, &l.PropertyID, &l.TenantID, &l.StartDate, &l.EndDate,
		&l.RentAmount, &l.DepositAmount, &l.PaymentDueDay,
		&l.LateFeePercentage, &l.LateFeeGracePeriod, &l.Status,
		&l.Terms, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

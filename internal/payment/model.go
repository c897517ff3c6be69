// Package payment records money collected against leases.
package payment

import (
	"time"
)

// Method is how a payment was made.
type Method string

const (
	MethodCreditCard   Method = "credit_card"
	MethodBankTransfer Method = "bank_transfer"
	MethodCheck        Method = "check"
	MethodCash         Method = "cash"
)

// ValidMethod reports whether m is a known payment method.
func ValidMethod(m string) bool {
	switch Method(m) {
	case MethodCreditCard, MethodBankTransfer, MethodCheck, MethodCash:
		return true
	}
	return false
}

// Type is what a payment is for.
type Type string

const (
	TypeRent        Type = "rent"
	TypeDeposit     Type = "deposit"
	TypeLateFee     Type = "late_fee"
	TypeMaintenance Type = "maintenance"
	TypeOther       Type = "other"
)

// ValidType reports whether t is a known payment type.
func ValidType(t string) bool {
	switch Type(t) {
	case TypeRent, TypeDeposit, TypeLateFee, TypeMaintenance, TypeOther:
		return true
	}
	return false
}

// Status tracks a payment through settlement.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// ValidStatus reports whether s is a known payment status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

type Payment struct {
	ID            int64     `json:"id"`
	LeaseID       int64     `json:"lease_id"`
	Amount        float64   `json:"amount"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod Method    `json:"payment_method"`
	PaymentType   Type      `json:"payment_type"`
	Status        Status    `json:"status"`
	TransactionID *string   `json:"transaction_id"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func scanPayment(row interface{ Scan(...interface{}) error }) (*Payment, error) {
	var p Payment
	err := row.Scan(
		&p.ID, &p.LeaseID, &p.Amount, &p.PaymentDate, &p.PaymentMethod,
		&p.PaymentType, &p.Status, &p.TransactionID, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

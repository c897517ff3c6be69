// Package tenant manages tenant records and their screening data.
package tenant

import (
	"time"
)

// Status tracks a tenant through screening and residency.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ValidStatus reports whether s is a known tenant status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusActive, StatusInactive:
		return true
	}
	return false
}

// Employment describes a tenant's employment situation.
type Employment string

const (
	Employed     Employment = "employed"
	SelfEmployed Employment = "self-employed"
	Unemployed   Employment = "unemployed"
	Retired      Employment = "retired"
)

// ValidEmployment reports whether e is a known employment status.
func ValidEmployment(e string) bool {
	switch Employment(e) {
	case Employed, SelfEmployed, Unemployed, Retired:
		return true
	}
	return false
}

type Tenant struct {
	ID                    int64      `json:"id"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone"`
	DateOfBirth           string     `json:"date_of_birth"`
	EmploymentStatus      Employment `json:"employment_status"`
	EmployerName          *string    `json:"employer_name"`
	MonthlyIncome         float64    `json:"monthly_income"`
	CreditScore           *int64     `json:"credit_score"`
	EmergencyContact      string     `json:"emergency_contact"`
	EmergencyContactPhone string     `json:"emergency_contact_phone"`
	Status                Status     `json:"status"`
	Notes                 *string    `json:"notes"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func scanTenant(row interface{ Scan(...interface{}) error }) (*Tenant, error) {
	var t Tenant
	err := row.Scan(
		&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.DateOfBirth,
		&t.EmploymentStatus, &t.EmployerName, &t.MonthlyIncome, &t.CreditScore,
		&t.EmergencyContact, &t.EmergencyContactPhone, &t.Status, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

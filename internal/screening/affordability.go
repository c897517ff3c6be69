// Package screening holds tenant qualification checks.
package screening

import (
	"github.com/rentalhub/rentalhub/internal/errs"
)

// MaxRentShare is the largest fraction of monthly income a qualifying
// rent may take.
const MaxRentShare = 0.3

// Affordability is the outcome of an income check for a given rent. It
// echoes the inputs so callers can show the figures behind the verdict.
type Affordability struct {
	CanAfford     bool    `json:"can_afford"`
	MonthlyIncome float64 `json:"monthly_income"`
	MonthlyRent   float64 `json:"monthly_rent"`
	Percentage    float64 `json:"percentage"`
}

// CheckAffordability reports whether rent fits within monthlyIncome and
// what share of income it takes, as a percentage.
func CheckAffordability(monthlyIncome, rent float64) (Affordability, error) {
	if monthlyIncome <= 0 {
		return Affordability{}, errs.New(errs.EInvalid, "monthly income must be positive")
	}
	if rent <= 0 {
		return Affordability{}, errs.New(errs.EInvalid, "rent amount must be positive")
	}
	return Affordability{
		CanAfford:     rent <= monthlyIncome*MaxRentShare,
		MonthlyIncome: monthlyIncome,
		MonthlyRent:   rent,
		Percentage:    rent / monthlyIncome * 100,
	}, nil
}

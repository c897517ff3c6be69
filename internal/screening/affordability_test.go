package screening

import (
	"math"
	"testing"

	"github.com/rentalhub/rentalhub/internal/errs"
)

func TestCheckAffordability(t *testing.T) {
	tests := []struct {
		name       string
		income     float64
		rent       float64
		canAfford  bool
		percentage float64
	}{
		{"comfortably within limit", 6000, 1500, true, 25},
		{"over limit", 6000, 2500, false, 41.666666666666664},
		{"exactly at limit", 6000, 1800, true, 30},
		{"just over limit", 6000, 1801, false, 30.016666666666666},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckAffordability(tt.income, tt.rent)
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if got.CanAfford != tt.canAfford {
				t.Errorf("can_afford = %v, want %v", got.CanAfford, tt.canAfford)
			}
			if math.Abs(got.Percentage-tt.percentage) > 1e-9 {
				t.Errorf("percentage = %v, want %v", got.Percentage, tt.percentage)
			}
			if got.MonthlyIncome != tt.income || got.MonthlyRent != tt.rent {
				t.Errorf("echoed income/rent = %v/%v, want %v/%v",
					got.MonthlyIncome, got.MonthlyRent, tt.income, tt.rent)
			}
		})
	}
}

func TestCheckAffordabilityInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		income float64
		rent   float64
	}{
		{"zero income", 0, 1500},
		{"negative income", -100, 1500},
		{"zero rent", 6000, 0},
		{"negative rent", 6000, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CheckAffordability(tt.income, tt.rent)
			if errs.ErrorCode(err) != errs.EInvalid {
				t.Errorf("got %v, want invalid", err)
			}
		})
	}
}

// Package interest computes period-by-period compound growth schedules for
// the loan calculator. Interest is simple within a period and compounds only
// between periods; every emitted figure is rounded to cents and the rounded
// ending principal seeds the next period.
package interest

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Inputs echoes the parameters a calculation was run with.
type Inputs struct {
	Principal           float64 `json:"principal"`
	MonthlyRate         float64 `json:"monthly_rate"`
	TotalMonths         int     `json:"total_months"`
	CompoundingInterval int     `json:"compounding_interval"`
}

// Period is one compounding step of the schedule.
type Period struct {
	Index             int     `json:"index"`
	Label             string  `json:"label"`
	StartingPrincipal float64 `json:"starting_principal"`
	InterestEarned    float64 `json:"interest_earned"`
	EndingPrincipal   float64 `json:"ending_principal"`
}

// Result is the full schedule. The final period's EndingPrincipal equals
// TotalAmount, and the period labels cover [1, TotalMonths] contiguously.
type Result struct {
	Inputs      Inputs   `json:"inputs"`
	TotalAmount float64  `json:"total_amount"`
	Breakdown   []Period `json:"breakdown"`
}

// Calculate builds the growth schedule for principal at monthlyRate percent
// per month over totalMonths, compounding every compoundingInterval months.
// A trailing partial period covers any remainder.
func Calculate(principal, monthlyRate float64, totalMonths, compoundingInterval int) (*Result, error) {
	if !isFinite(principal) || !isFinite(monthlyRate) {
		return nil, fmt.Errorf("%w: inputs must be finite numbers", ErrInvalidArgument)
	}
	if principal <= 0 {
		return nil, fmt.Errorf("%w: principal must be positive", ErrInvalidArgument)
	}
	if monthlyRate < 0 {
		return nil, fmt.Errorf("%w: monthly rate must not be negative", ErrInvalidArgument)
	}
	if totalMonths <= 0 || compoundingInterval <= 0 {
		return nil, fmt.Errorf("%w: months and interval must be positive", ErrInvalidArgument)
	}

	rate := monthlyRate / 100
	fullPeriods := totalMonths / compoundingInterval
	remainingMonths := totalMonths % compoundingInterval

	res := &Result{
		Inputs: Inputs{
			Principal:           principal,
			MonthlyRate:         monthlyRate,
			TotalMonths:         totalMonths,
			CompoundingInterval: compoundingInterval,
		},
	}

	// Each period starts from the prior period's rounded ending principal, so
	// rounding error can cascade across the schedule. Intentional: the result
	// must match what the calculator has always shown.
	start := round2(principal)
	month := 1

	for i := 0; i < fullPeriods; i++ {
		interest := start * rate * float64(compoundingInterval)
		end := round2(start + interest)

		res.Breakdown = append(res.Breakdown, Period{
			Index:             len(res.Breakdown) + 1,
			Label:             fmt.Sprintf("Months %d to %d", month, month+compoundingInterval-1),
			StartingPrincipal: start,
			InterestEarned:    round2(interest),
			EndingPrincipal:   end,
		})

		start = end
		month += compoundingInterval
	}

	if remainingMonths > 0 {
		interest := start * rate * float64(remainingMonths)
		end := round2(start + interest)

		res.Breakdown = append(res.Breakdown, Period{
			Index:             len(res.Breakdown) + 1,
			Label:             fmt.Sprintf("Remaining %d Months (%d to %d)", remainingMonths, month, month+remainingMonths-1),
			StartingPrincipal: start,
			InterestEarned:    round2(interest),
			EndingPrincipal:   end,
		})

		start = end
	}

	res.TotalAmount = start
	return res, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

package interest

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMonthlyCompounding(t *testing.T) {
	res, err := Calculate(1000, 10, 3, 1)
	require.NoError(t, err)

	require.Len(t, res.Breakdown, 3)
	assert.Equal(t, 1331.00, res.TotalAmount)

	want := []Period{
		{Index: 1, Label: "Months 1 to 1", StartingPrincipal: 1000.00, InterestEarned: 100.00, EndingPrincipal: 1100.00},
		{Index: 2, Label: "Months 2 to 2", StartingPrincipal: 1100.00, InterestEarned: 110.00, EndingPrincipal: 1210.00},
		{Index: 3, Label: "Months 3 to 3", StartingPrincipal: 1210.00, InterestEarned: 121.00, EndingPrincipal: 1331.00},
	}
	assert.Equal(t, want, res.Breakdown)
}

func TestCalculateTrailingPartialPeriod(t *testing.T) {
	res, err := Calculate(1000, 10, 5, 2)
	require.NoError(t, err)

	require.Len(t, res.Breakdown, 3)
	assert.Equal(t, "Months 1 to 2", res.Breakdown[0].Label)
	assert.Equal(t, "Months 3 to 4", res.Breakdown[1].Label)
	assert.Equal(t, "Remaining 1 Months (5 to 5)", res.Breakdown[2].Label)

	// 1000 -> +20% = 1200 -> +20% = 1440 -> +10% = 1584
	assert.Equal(t, 1200.00, res.Breakdown[0].EndingPrincipal)
	assert.Equal(t, 1440.00, res.Breakdown[1].EndingPrincipal)
	assert.Equal(t, 1584.00, res.TotalAmount)
}

func TestCalculateIntervalLongerThanTerm(t *testing.T) {
	// Whole term fits in the remainder: one "Remaining" period only.
	res, err := Calculate(500, 2.5, 4, 6)
	require.NoError(t, err)

	require.Len(t, res.Breakdown, 1)
	assert.Equal(t, "Remaining 4 Months (1 to 4)", res.Breakdown[0].Label)
	assert.Equal(t, 550.00, res.TotalAmount)
}

func TestCalculateZeroRate(t *testing.T) {
	res, err := Calculate(1234.56, 0, 12, 3)
	require.NoError(t, err)

	assert.Equal(t, 1234.56, res.TotalAmount)
	for _, p := range res.Breakdown {
		assert.Equal(t, 0.00, p.InterestEarned)
	}
}

func TestCalculateRoundedCarryCascades(t *testing.T) {
	// The next period must start from the rounded ending principal, not the
	// full-precision value.
	res, err := Calculate(100.004, 0.001, 2, 1)
	require.NoError(t, err)

	require.Len(t, res.Breakdown, 2)
	assert.Equal(t, 100.00, res.Breakdown[0].StartingPrincipal)
	assert.Equal(t, res.Breakdown[0].EndingPrincipal, res.Breakdown[1].StartingPrincipal)
}

func TestCalculateScheduleProperties(t *testing.T) {
	cases := []struct {
		principal   float64
		rate        float64
		months      int
		interval    int
	}{
		{1000, 10, 3, 1},
		{1000, 10, 5, 2},
		{2500.50, 1.75, 37, 6},
		{99.99, 0.5, 12, 12},
		{100000, 2, 24, 7},
	}

	for _, tc := range cases {
		name := fmt.Sprintf("p=%v r=%v m=%d i=%d", tc.principal, tc.rate, tc.months, tc.interval)
		t.Run(name, func(t *testing.T) {
			res, err := Calculate(tc.principal, tc.rate, tc.months, tc.interval)
			require.NoError(t, err)

			// Periods partition [1, months] with no gaps.
			monthsCovered := 0
			for i, p := range res.Breakdown {
				assert.Equal(t, i+1, p.Index)
				if i+1 < len(res.Breakdown) || tc.months%tc.interval == 0 {
					monthsCovered += tc.interval
				} else {
					monthsCovered += tc.months % tc.interval
				}

				// ending == starting + interest within a cent of rounding
				assert.InDelta(t, p.StartingPrincipal+p.InterestEarned, p.EndingPrincipal, 0.005)

				// every figure carries at most two decimals
				assert.Equal(t, math.Round(p.EndingPrincipal*100)/100, p.EndingPrincipal)
				assert.Equal(t, math.Round(p.InterestEarned*100)/100, p.InterestEarned)
			}
			assert.Equal(t, tc.months, monthsCovered)

			// chained: each start equals the previous rounded end
			for i := 1; i < len(res.Breakdown); i++ {
				assert.Equal(t, res.Breakdown[i-1].EndingPrincipal, res.Breakdown[i].StartingPrincipal)
			}

			assert.Equal(t, res.Breakdown[len(res.Breakdown)-1].EndingPrincipal, res.TotalAmount)
			assert.Equal(t, tc.principal, res.Inputs.Principal)
		})
	}
}

func TestCalculateInvalidInputs(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		months    int
		interval  int
	}{
		{"nan principal", math.NaN(), 10, 3, 1},
		{"inf rate", 1000, math.Inf(1), 3, 1},
		{"zero principal", 0, 10, 3, 1},
		{"negative rate", 1000, -1, 3, 1},
		{"zero months", 1000, 10, 0, 1},
		{"zero interval", 1000, 10, 3, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Calculate(tc.principal, tc.rate, tc.months, tc.interval)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Nil(t, res)
		})
	}
}

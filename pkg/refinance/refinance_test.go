package refinance

import (
	"math"
	"testing"
)

func TestMonthlyPaymentZeroRate(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		years     int
	}{
		{"Typical balance", 300000, 25},
		{"Small balance", 12000, 1},
		{"Max term", 2000000, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := tt.principal / float64(tt.years*12)
			result := MonthlyPayment(tt.principal, 0, tt.years)
			if result != expected {
				t.Errorf("MonthlyPayment(%v, 0, %v) = %v, expected exactly %v",
					tt.principal, tt.years, result, expected)
			}
		})
	}
}

func TestMonthlyPaymentAmortization(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     int
		expected  float64
		tolerance float64
	}{
		{"300k at 6.5 over 25y", 300000, 6.5, 25, 2026, 5},
		{"300k at 5.5 over 25y", 300000, 5.5, 25, 1842, 5},
		{"100k at 3.0 over 30y", 100000, 3.0, 30, 422, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MonthlyPayment(tt.principal, tt.rate, tt.years)
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("MonthlyPayment(%v, %v, %v) = %v, expected %v ± %v",
					tt.principal, tt.rate, tt.years, result, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestMonthlyPaymentZeroTermPropagatesNonFinite(t *testing.T) {
	result := MonthlyPayment(300000, 0, 0)
	if !math.IsInf(result, 1) && !math.IsNaN(result) {
		t.Errorf("MonthlyPayment with zero term = %v, expected a non-finite value", result)
	}
}

func TestComputeReportScenario(t *testing.T) {
	in := Input{
		CurrentBalance: 300000,
		CurrentRate:    6.5,
		NewRate:        5.5,
		RemainingTerm:  25,
		ClosingCosts:   5000,
	}

	report := ComputeReport(in)

	if math.Abs(report.MonthlySavings-183) > 2 {
		t.Errorf("MonthlySavings = %v, expected about 183", report.MonthlySavings)
	}
	if report.BreakEvenMonths != 28 {
		t.Errorf("BreakEvenMonths = %v, expected 28", report.BreakEvenMonths)
	}
	if report.LifetimeSavings <= 0 {
		t.Errorf("LifetimeSavings = %v, expected a positive value", report.LifetimeSavings)
	}
	if report.NewTotalCost >= report.CurrentTotalCost {
		t.Errorf("NewTotalCost %v should be below CurrentTotalCost %v",
			report.NewTotalCost, report.CurrentTotalCost)
	}

	// Totals reconcile: lifetime savings equals the cost gap.
	if report.LifetimeSavings != report.CurrentTotalCost-report.NewTotalCost {
		t.Errorf("LifetimeSavings %v != CurrentTotalCost-NewTotalCost %v",
			report.LifetimeSavings, report.CurrentTotalCost-report.NewTotalCost)
	}
}

func TestComputeReportUnfavorableRefinance(t *testing.T) {
	in := Input{
		CurrentBalance: 300000,
		CurrentRate:    5.5,
		NewRate:        6.5,
		RemainingTerm:  25,
		ClosingCosts:   5000,
	}

	report := ComputeReport(in)

	if report.MonthlySavings >= 0 {
		t.Errorf("MonthlySavings = %v, expected negative", report.MonthlySavings)
	}
	if report.BreakEvenMonths != 0 {
		t.Errorf("BreakEvenMonths = %v, expected 0 when savings are negative", report.BreakEvenMonths)
	}
	if report.LifetimeSavings != 0 {
		t.Errorf("LifetimeSavings = %v, expected 0 when the refinance costs more", report.LifetimeSavings)
	}
}

func TestMonthlySavingsRateSwapAntisymmetry(t *testing.T) {
	tests := []struct {
		name  string
		rate1 float64
		rate2 float64
	}{
		{"One point apart", 6.5, 5.5},
		{"Quarter point apart", 4.25, 4.0},
		{"Zero against positive", 0, 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := Input{CurrentBalance: 300000, RemainingTerm: 25, ClosingCosts: 5000}
			forward := ComputeReport(base.WithCurrentRate(tt.rate1).WithNewRate(tt.rate2))
			reverse := ComputeReport(base.WithCurrentRate(tt.rate2).WithNewRate(tt.rate1))
			if forward.MonthlySavings != -reverse.MonthlySavings {
				t.Errorf("MonthlySavings not antisymmetric: %v vs %v",
					forward.MonthlySavings, reverse.MonthlySavings)
			}
		})
	}
}

func TestLifetimeSavingsNeverNegative(t *testing.T) {
	inputs := []Input{
		{CurrentBalance: 300000, CurrentRate: 5.5, NewRate: 6.5, RemainingTerm: 25, ClosingCosts: 5000},
		{CurrentBalance: 300000, CurrentRate: 6.5, NewRate: 6.5, RemainingTerm: 25, ClosingCosts: 50000},
		{CurrentBalance: 10000, CurrentRate: 0, NewRate: 15, RemainingTerm: 1, ClosingCosts: 0},
		{CurrentBalance: 2000000, CurrentRate: 15, NewRate: 0, RemainingTerm: 30, ClosingCosts: 50000},
	}

	for _, in := range inputs {
		report := ComputeReport(in)
		if report.LifetimeSavings < 0 {
			t.Errorf("LifetimeSavings = %v for input %+v, expected >= 0", report.LifetimeSavings, in)
		}
	}
}

func TestComputeReportIdempotence(t *testing.T) {
	in := Input{
		CurrentBalance: 487500.25,
		CurrentRate:    7.125,
		NewRate:        6.375,
		RemainingTerm:  22,
		ClosingCosts:   8750,
	}

	first := ComputeReport(in)
	second := ComputeReport(in)
	if first != second {
		t.Errorf("repeated evaluation differs: %+v vs %+v", first, second)
	}
}

func TestWithFieldOverrides(t *testing.T) {
	base := Input{
		CurrentBalance: 300000,
		CurrentRate:    6.5,
		NewRate:        5.5,
		RemainingTerm:  25,
		ClosingCosts:   5000,
	}

	modified := base.
		WithCurrentBalance(250000).
		WithCurrentRate(7.0).
		WithNewRate(6.0).
		WithRemainingTerm(20).
		WithClosingCosts(4000)

	// The base record is untouched.
	if base.CurrentBalance != 300000 || base.CurrentRate != 6.5 || base.NewRate != 5.5 ||
		base.RemainingTerm != 25 || base.ClosingCosts != 5000 {
		t.Errorf("base input mutated: %+v", base)
	}

	expected := Input{
		CurrentBalance: 250000,
		CurrentRate:    7.0,
		NewRate:        6.0,
		RemainingTerm:  20,
		ClosingCosts:   4000,
	}
	if modified != expected {
		t.Errorf("modified = %+v, expected %+v", modified, expected)
	}
}

func TestRateSensitivity(t *testing.T) {
	in := Input{
		CurrentBalance: 300000,
		CurrentRate:    6.5,
		NewRate:        5.5,
		RemainingTerm:  25,
		ClosingCosts:   5000,
	}

	points := RateSensitivity(in, 1.0, 0.25)
	if len(points) != 9 {
		t.Fatalf("expected 9 grid points, got %d", len(points))
	}

	if points[0].NewRate != 4.5 || points[len(points)-1].NewRate != 6.5 {
		t.Errorf("grid spans %v to %v, expected 4.5 to 6.5",
			points[0].NewRate, points[len(points)-1].NewRate)
	}

	// Savings shrink monotonically as the candidate rate rises.
	for i := 1; i < len(points); i++ {
		if points[i].MonthlySavings > points[i-1].MonthlySavings {
			t.Errorf("MonthlySavings increased from %v to %v at rate %v",
				points[i-1].MonthlySavings, points[i].MonthlySavings, points[i].NewRate)
		}
	}

	// The center point matches the plain report.
	center := points[4]
	report := ComputeReport(in)
	if center.MonthlySavings != report.MonthlySavings {
		t.Errorf("center point savings %v != report savings %v",
			center.MonthlySavings, report.MonthlySavings)
	}
}

func TestRateSensitivityFloorsAtZero(t *testing.T) {
	in := Input{CurrentBalance: 300000, CurrentRate: 3.0, NewRate: 0.5, RemainingTerm: 25}

	points := RateSensitivity(in, 1.0, 0.5)
	for _, point := range points {
		if point.NewRate < 0 {
			t.Errorf("grid produced negative rate %v", point.NewRate)
		}
	}
}

func TestRateSensitivityDegenerateGrid(t *testing.T) {
	in := Input{CurrentBalance: 300000, CurrentRate: 6.5, NewRate: 5.5, RemainingTerm: 25}

	if points := RateSensitivity(in, -1, 0.25); points != nil {
		t.Errorf("negative span should yield nil, got %d points", len(points))
	}
	if points := RateSensitivity(in, 1, 0); points != nil {
		t.Errorf("zero step should yield nil, got %d points", len(points))
	}
}

func BenchmarkComputeReport(b *testing.B) {
	in := Input{
		CurrentBalance: 300000,
		CurrentRate:    6.5,
		NewRate:        5.5,
		RemainingTerm:  25,
		ClosingCosts:   5000,
	}

	for i := 0; i < b.N; i++ {
		ComputeReport(in)
	}
}

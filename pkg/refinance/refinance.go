// Package refinance implements the refinance savings calculation. The
// computation is pure: it performs no I/O, keeps no state, and produces no
// errors of its own. Identical inputs always yield identical reports, so it
// is safe to call concurrently without synchronization. Input sanitization
// (zeroing invalid values, clamping to documented ranges) is the caller's
// responsibility; non-finite inputs propagate to non-finite outputs.
package refinance

import (
	"math"

	"github.com/iwvelando/refinance-calculator/pkg/constants"
	"github.com/iwvelando/refinance-calculator/pkg/mathutil"
)

// Input holds the parameters of a refinance candidate. It is treated as an
// immutable value record; use the With* methods to derive modified copies.
type Input struct {
	// CurrentBalance is the outstanding principal in dollars.
	CurrentBalance float64 `json:"currentBalance" yaml:"currentBalance"`
	// CurrentRate is the existing annual nominal interest rate in percent.
	CurrentRate float64 `json:"currentRate" yaml:"currentRate"`
	// NewRate is the proposed annual nominal interest rate in percent.
	NewRate float64 `json:"newRate" yaml:"newRate"`
	// RemainingTerm is the remaining loan duration in whole years.
	RemainingTerm int `json:"remainingTerm" yaml:"remainingTerm"`
	// ClosingCosts is the one-time refinancing fee in dollars.
	ClosingCosts float64 `json:"closingCosts" yaml:"closingCosts"`
}

// WithCurrentBalance returns a copy of the input with the balance replaced.
func (in Input) WithCurrentBalance(balance float64) Input {
	in.CurrentBalance = balance
	return in
}

// WithCurrentRate returns a copy of the input with the current rate replaced.
func (in Input) WithCurrentRate(rate float64) Input {
	in.CurrentRate = rate
	return in
}

// WithNewRate returns a copy of the input with the proposed rate replaced.
func (in Input) WithNewRate(rate float64) Input {
	in.NewRate = rate
	return in
}

// WithRemainingTerm returns a copy of the input with the term replaced.
func (in Input) WithRemainingTerm(years int) Input {
	in.RemainingTerm = years
	return in
}

// WithClosingCosts returns a copy of the input with the closing costs replaced.
func (in Input) WithClosingCosts(costs float64) Input {
	in.ClosingCosts = costs
	return in
}

// Report holds the savings figures derived from one Input. Reports are never
// stored; they are recomputed from the current input on every evaluation.
type Report struct {
	// CurrentMonthlyPayment and NewMonthlyPayment carry full floating-point
	// precision; only the aggregate figures below are rounded.
	CurrentMonthlyPayment float64 `json:"currentMonthlyPayment"`
	NewMonthlyPayment     float64 `json:"newMonthlyPayment"`
	// MonthlySavings is current minus new payment, rounded to whole dollars.
	// Negative when the refinance raises the payment.
	MonthlySavings float64 `json:"monthlySavings"`
	// CurrentTotalCost and NewTotalCost are whole-dollar lifetime costs of
	// keeping versus refinancing; NewTotalCost includes the closing costs.
	CurrentTotalCost float64 `json:"currentTotalCost"`
	NewTotalCost     float64 `json:"newTotalCost"`
	// LifetimeSavings is floored at zero: an unfavorable refinance reports
	// no lifetime savings rather than a net loss.
	LifetimeSavings float64 `json:"lifetimeSavings"`
	// BreakEvenMonths is the number of months of savings needed to recoup
	// the closing costs. Zero encodes "not applicable" (no positive monthly
	// savings) and is rendered as N/A by display layers.
	BreakEvenMonths int `json:"breakEvenMonths"`
}

// MonthlyPayment calculates the fixed monthly payment for a loan using the
// standard amortization formula. A non-positive rate falls back to
// straight-line division of the principal over the term; this zero-rate
// policy is deliberate and avoids the division by zero in the amortization
// formula. A zero term yields a non-finite value which propagates to the
// caller.
func MonthlyPayment(principal, annualRatePercent float64, termYears int) float64 {
	totalPayments := float64(termYears * constants.MonthsPerYear)
	monthlyRate := annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)

	if monthlyRate <= 0 {
		// For zero interest, simply divide the principal by term
		return principal / totalPayments
	}

	power := math.Pow(1.00+monthlyRate, totalPayments)
	discountFactor := (power - 1.00) / power
	return principal * monthlyRate / discountFactor
}

// ComputeReport evaluates the refinance candidate and returns its savings
// report. Monthly savings and total costs are rounded to whole dollars; the
// payments themselves are not rounded.
func ComputeReport(in Input) Report {
	currentMonthly := MonthlyPayment(in.CurrentBalance, in.CurrentRate, in.RemainingTerm)
	newMonthly := MonthlyPayment(in.CurrentBalance, in.NewRate, in.RemainingTerm)

	monthlySavings := mathutil.RoundWhole(currentMonthly - newMonthly)

	totalMonths := float64(in.RemainingTerm * constants.MonthsPerYear)
	currentTotalCost := mathutil.RoundWhole(currentMonthly * totalMonths)
	newTotalCost := mathutil.RoundWhole(newMonthly*totalMonths) + in.ClosingCosts

	lifetimeSavings := mathutil.Max(0, currentTotalCost-newTotalCost)

	// Break-even is only meaningful when the new payment is strictly cheaper.
	breakEvenMonths := 0
	if monthlySavings > 0 {
		breakEvenMonths = int(math.Ceil(in.ClosingCosts / monthlySavings))
	}

	return Report{
		CurrentMonthlyPayment: currentMonthly,
		NewMonthlyPayment:     newMonthly,
		MonthlySavings:        monthlySavings,
		CurrentTotalCost:      currentTotalCost,
		NewTotalCost:          newTotalCost,
		LifetimeSavings:       lifetimeSavings,
		BreakEvenMonths:       breakEvenMonths,
	}
}

// SensitivityPoint holds the savings figures for one candidate rate in a
// sensitivity grid.
type SensitivityPoint struct {
	NewRate         float64 `json:"newRate"`
	MonthlySavings  float64 `json:"monthlySavings"`
	LifetimeSavings float64 `json:"lifetimeSavings"`
	BreakEvenMonths int     `json:"breakEvenMonths"`
}

// RateSensitivity evaluates the report across a grid of candidate new rates
// spanning newRate ± span in step increments. Candidate rates are floored at
// zero. Returns nil when the grid parameters are degenerate.
func RateSensitivity(in Input, span, step float64) []SensitivityPoint {
	if span < 0 || step <= 0 {
		return nil
	}

	// Integer-indexed grid avoids accumulating floating-point step error.
	steps := int(math.Round(span / step))
	points := make([]SensitivityPoint, 0, 2*steps+1)
	for i := -steps; i <= steps; i++ {
		rate := in.NewRate + float64(i)*step
		if rate < 0 {
			rate = 0
		}
		report := ComputeReport(in.WithNewRate(rate))
		points = append(points, SensitivityPoint{
			NewRate:         rate,
			MonthlySavings:  report.MonthlySavings,
			LifetimeSavings: report.LifetimeSavings,
			BreakEvenMonths: report.BreakEvenMonths,
		})
	}
	return points
}

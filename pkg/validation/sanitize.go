// Package validation provides input sanitization and format validation
// utilities. Sanitization is the input collaborator's duty: the calculation
// core accepts whatever it is given, so every path that collects user input
// runs it through SanitizeInput first.
package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/refinance-calculator/pkg/constants"
	"github.com/iwvelando/refinance-calculator/pkg/refinance"
)

// SanitizeInput normalizes a refinance input for calculation. Non-finite or
// negative fields are zeroed first, then every field is clamped into its
// documented range. A human-readable warning is returned for each adjustment.
// Clamping the term into [1, 30] also keeps the zero-term degenerate division
// out of the calculation core.
func SanitizeInput(in refinance.Input) (refinance.Input, []string) {
	var warnings []string

	balance, balanceWarnings := sanitizeField("current balance", in.CurrentBalance,
		constants.MinBalance, constants.MaxBalance)
	warnings = append(warnings, balanceWarnings...)

	currentRate, currentRateWarnings := sanitizeField("current rate", in.CurrentRate,
		constants.MinRate, constants.MaxRate)
	warnings = append(warnings, currentRateWarnings...)

	newRate, newRateWarnings := sanitizeField("new rate", in.NewRate,
		constants.MinRate, constants.MaxRate)
	warnings = append(warnings, newRateWarnings...)

	term := in.RemainingTerm
	if term < constants.MinTermYears {
		warnings = append(warnings, fmt.Sprintf("remaining term %d is below %d years, raised to the minimum",
			term, constants.MinTermYears))
		term = constants.MinTermYears
	} else if term > constants.MaxTermYears {
		warnings = append(warnings, fmt.Sprintf("remaining term %d exceeds %d years, lowered to the maximum",
			term, constants.MaxTermYears))
		term = constants.MaxTermYears
	}

	costs, costsWarnings := sanitizeField("closing costs", in.ClosingCosts,
		constants.MinClosingCosts, constants.MaxClosingCosts)
	warnings = append(warnings, costsWarnings...)

	return refinance.Input{
		CurrentBalance: balance,
		CurrentRate:    currentRate,
		NewRate:        newRate,
		RemainingTerm:  term,
		ClosingCosts:   costs,
	}, warnings
}

// sanitizeField zeroes invalid values before clamping, so a NaN balance ends
// up at the documented minimum rather than propagating.
func sanitizeField(name string, value, min, max float64) (float64, []string) {
	var warnings []string

	if math.IsNaN(value) || math.IsInf(value, 0) {
		warnings = append(warnings, fmt.Sprintf("%s is not a finite number, treated as 0", name))
		value = 0
	} else if value < 0 {
		warnings = append(warnings, fmt.Sprintf("%s %.2f is negative, treated as 0", name, value))
		value = 0
	}

	if value < min {
		if min > 0 {
			warnings = append(warnings, fmt.Sprintf("%s %.2f is below %.2f, raised to the minimum", name, value, min))
		}
		value = min
	} else if value > max {
		warnings = append(warnings, fmt.Sprintf("%s %.2f exceeds %.2f, lowered to the maximum", name, value, max))
		value = max
	}

	return value, warnings
}

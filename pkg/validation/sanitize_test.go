package validation

import (
	"math"
	"testing"

	"github.com/iwvelando/refinance-calculator/pkg/constants"
	"github.com/iwvelando/refinance-calculator/pkg/refinance"
)

func TestSanitizeInputPassThrough(t *testing.T) {
	in := refinance.Input{
		CurrentBalance: 300000,
		CurrentRate:    6.5,
		NewRate:        5.5,
		RemainingTerm:  25,
		ClosingCosts:   5000,
	}

	sanitized, warnings := SanitizeInput(in)
	if sanitized != in {
		t.Errorf("in-range input modified: %+v", sanitized)
	}
	if len(warnings) != 0 {
		t.Errorf("in-range input produced warnings: %v", warnings)
	}
}

func TestSanitizeInputClamping(t *testing.T) {
	tests := []struct {
		name     string
		input    refinance.Input
		expected refinance.Input
	}{
		{
			name:     "Balance below minimum",
			input:    refinance.Input{CurrentBalance: 5000, CurrentRate: 6, NewRate: 5, RemainingTerm: 10, ClosingCosts: 1000},
			expected: refinance.Input{CurrentBalance: constants.MinBalance, CurrentRate: 6, NewRate: 5, RemainingTerm: 10, ClosingCosts: 1000},
		},
		{
			name:     "Balance above maximum",
			input:    refinance.Input{CurrentBalance: 3000000, CurrentRate: 6, NewRate: 5, RemainingTerm: 10, ClosingCosts: 1000},
			expected: refinance.Input{CurrentBalance: constants.MaxBalance, CurrentRate: 6, NewRate: 5, RemainingTerm: 10, ClosingCosts: 1000},
		},
		{
			name:     "Rates above maximum",
			input:    refinance.Input{CurrentBalance: 300000, CurrentRate: 22, NewRate: 18, RemainingTerm: 10, ClosingCosts: 1000},
			expected: refinance.Input{CurrentBalance: 300000, CurrentRate: constants.MaxRate, NewRate: constants.MaxRate, RemainingTerm: 10, ClosingCosts: 1000},
		},
		{
			name:     "Term out of range both ways",
			input:    refinance.Input{CurrentBalance: 300000, CurrentRate: 6, NewRate: 5, RemainingTerm: 45, ClosingCosts: 1000},
			expected: refinance.Input{CurrentBalance: 300000, CurrentRate: 6, NewRate: 5, RemainingTerm: constants.MaxTermYears, ClosingCosts: 1000},
		},
		{
			name:     "Zero term raised to minimum",
			input:    refinance.Input{CurrentBalance: 300000, CurrentRate: 6, NewRate: 5, RemainingTerm: 0, ClosingCosts: 1000},
			expected: refinance.Input{CurrentBalance: 300000, CurrentRate: 6, NewRate: 5, RemainingTerm: constants.MinTermYears, ClosingCosts: 1000},
		},
		{
			name:     "Closing costs above maximum",
			input:    refinance.Input{CurrentBalance: 300000, CurrentRate: 6, NewRate: 5, RemainingTerm: 10, ClosingCosts: 90000},
			expected: refinance.Input{CurrentBalance: 300000, CurrentRate: 6, NewRate: 5, RemainingTerm: 10, ClosingCosts: constants.MaxClosingCosts},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sanitized, warnings := SanitizeInput(tt.input)
			if sanitized != tt.expected {
				t.Errorf("SanitizeInput(%+v) = %+v, expected %+v", tt.input, sanitized, tt.expected)
			}
			if len(warnings) == 0 {
				t.Errorf("out-of-range input produced no warnings")
			}
		})
	}
}

func TestSanitizeInputInvalidValues(t *testing.T) {
	in := refinance.Input{
		CurrentBalance: math.NaN(),
		CurrentRate:    math.Inf(1),
		NewRate:        -3.5,
		RemainingTerm:  -2,
		ClosingCosts:   math.Inf(-1),
	}

	sanitized, warnings := SanitizeInput(in)

	// Invalid values zero out first and then clamp into range, so the NaN
	// balance lands at the documented minimum.
	if sanitized.CurrentBalance != constants.MinBalance {
		t.Errorf("CurrentBalance = %v, expected %v", sanitized.CurrentBalance, constants.MinBalance)
	}
	if sanitized.CurrentRate != 0 {
		t.Errorf("CurrentRate = %v, expected 0", sanitized.CurrentRate)
	}
	if sanitized.NewRate != 0 {
		t.Errorf("NewRate = %v, expected 0", sanitized.NewRate)
	}
	if sanitized.RemainingTerm != constants.MinTermYears {
		t.Errorf("RemainingTerm = %v, expected %v", sanitized.RemainingTerm, constants.MinTermYears)
	}
	if sanitized.ClosingCosts != 0 {
		t.Errorf("ClosingCosts = %v, expected 0", sanitized.ClosingCosts)
	}

	if len(warnings) < 5 {
		t.Errorf("expected a warning per adjusted field, got %d: %v", len(warnings), warnings)
	}
}

// Package output provides utilities for formatting and displaying refinance
// comparison results.
package output

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/iwvelando/refinance-calculator/internal/compare"
	"github.com/iwvelando/refinance-calculator/pkg/format"
	"github.com/iwvelando/refinance-calculator/pkg/mathutil"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	bestStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(results compare.Results) {
	fmt.Print(PrettyString(results))
}

// PrettyString renders the human-readable report as a string.
func PrettyString(results compare.Results) string {
	var b strings.Builder

	best := results.Best()
	for i, scenario := range results {
		b.WriteString(titleStyle.Render(fmt.Sprintf("--- Results for scenario %s ---", scenario.Name)))
		b.WriteString("\n")

		writeRow(&b, "Current monthly payment", format.Currency(scenario.Report.CurrentMonthlyPayment))
		writeRow(&b, "New monthly payment", format.Currency(scenario.Report.NewMonthlyPayment))
		writeRow(&b, "Monthly savings", savings(scenario.Report.MonthlySavings))
		writeRow(&b, "Break-even time", format.BreakEven(scenario.Report.BreakEvenMonths))
		b.WriteString("\n")

		// Three-row cost breakdown over the remaining term.
		writeRow(&b, "Current total cost", format.USD(scenario.Report.CurrentTotalCost))
		writeRow(&b, "New total cost", format.USD(scenario.Report.NewTotalCost))
		writeRow(&b, "Net lifetime savings", savings(scenario.Report.LifetimeSavings))

		if len(scenario.Sensitivity) > 0 {
			b.WriteString("\n")
			b.WriteString(labelStyle.Render("Rate sensitivity"))
			b.WriteString("\n")
			for _, point := range scenario.Sensitivity {
				b.WriteString(fmt.Sprintf("  %5.2f%% | %s/mo | %s lifetime | %s\n",
					point.NewRate,
					savings(point.MonthlySavings),
					format.USD(point.LifetimeSavings),
					format.BreakEven(point.BreakEvenMonths)))
			}
		}

		if len(scenario.Warnings) > 0 {
			b.WriteString("\n")
			for _, warning := range scenario.Warnings {
				b.WriteString(fmt.Sprintf("  warning: %s\n", warning))
			}
		}

		if i < len(results)-1 {
			b.WriteString("\n")
		}
	}

	if best != nil && len(results) > 1 {
		b.WriteString("\n")
		b.WriteString(bestStyle.Render(fmt.Sprintf("Best option: %s (%s lifetime savings)",
			best.Name, format.USD(best.Report.LifetimeSavings))))
		b.WriteString("\n")
	}

	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(fmt.Sprintf("%-24s | %s\n", label, value))
}

func savings(amount float64) string {
	formatted := format.USD(amount)
	if mathutil.IsPositive(amount) {
		return positiveStyle.Render(formatted)
	}
	if mathutil.IsNegative(amount) {
		return negativeStyle.Render(formatted)
	}
	return formatted
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results compare.Results) {
	fmt.Print(CsvString(results))
}

// CsvString renders the comparison as CSV, one row per scenario.
func CsvString(results compare.Results) string {
	var b strings.Builder

	b.WriteString(`"scenario","currentBalance","currentRate","newRate","remainingTerm","closingCosts",` +
		`"currentMonthlyPayment","newMonthlyPayment","monthlySavings","breakEvenMonths",` +
		`"currentTotalCost","newTotalCost","lifetimeSavings"` + "\n")

	for _, scenario := range results {
		b.WriteString(fmt.Sprintf(`"%s","%.2f","%.3f","%.3f","%d","%.2f","%.2f","%.2f","%.0f","%d","%.0f","%.0f","%.0f"`,
			scenario.Name,
			scenario.Input.CurrentBalance,
			scenario.Input.CurrentRate,
			scenario.Input.NewRate,
			scenario.Input.RemainingTerm,
			scenario.Input.ClosingCosts,
			scenario.Report.CurrentMonthlyPayment,
			scenario.Report.NewMonthlyPayment,
			scenario.Report.MonthlySavings,
			scenario.Report.BreakEvenMonths,
			scenario.Report.CurrentTotalCost,
			scenario.Report.NewTotalCost,
			scenario.Report.LifetimeSavings))
		b.WriteString("\n")
	}

	return b.String()
}

// Package format provides currency string formatting for report display.
// Displayed amounts are en-US USD; aggregate figures use whole dollars.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/refinance-calculator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// USD returns a whole-dollar currency string with thousands separators
// (e.g., "-$1,234"). This is the display format for savings and total-cost
// figures.
func USD(amount float64) string {
	formatted := printer.Sprintf("%.0f", math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Currency returns a currency string with a dollar sign and thousands
// separators to cent precision (e.g., "-$1,234.56"). Used where the exact
// payment amount matters, such as the PDF report. The amount is normalized
// to cents first so a half-cent input rounds away from zero.
func Currency(amount float64) string {
	formatted := formatPositiveCurrency(mathutil.Round(math.Abs(amount)))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// BreakEven renders a break-even month count. Zero encodes "no break-even"
// and renders as N/A.
func BreakEven(months int) string {
	switch {
	case months <= 0:
		return "N/A"
	case months == 1:
		return "1 month"
	default:
		return fmt.Sprintf("%d months", months)
	}
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}

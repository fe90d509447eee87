package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/iwvelando/refinance-calculator/internal/compare"
	"github.com/iwvelando/refinance-calculator/pkg/format"
)

const pdfContentWidth = 190.0 // A4 width minus 10mm margins

// PDFReport renders the comparison as an A4 PDF document.
func PDFReport(results compare.Results) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(pdfContentWidth, 12, "Refinance Savings Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(pdfContentWidth, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")),
		"", 1, "C", false, 0, "")
	pdf.Ln(6)

	for _, scenario := range results {
		writeScenarioSection(pdf, scenario)
		pdf.Ln(8)
	}

	if best := results.Best(); best != nil && len(results) > 1 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(pdfContentWidth, 8, fmt.Sprintf("Best option: %s (%s lifetime savings)",
			best.Name, format.USD(best.Report.LifetimeSavings)), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF report: %w", err)
	}
	return buf.Bytes(), nil
}

func writeScenarioSection(pdf *fpdf.Fpdf, scenario compare.ScenarioReport) {
	pdf.SetFillColor(245, 247, 250)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(pdfContentWidth, 9, fmt.Sprintf("Scenario: %s", scenario.Name), "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	writePDFRow(pdf, "Balance", format.Currency(scenario.Input.CurrentBalance))
	writePDFRow(pdf, "Rates", fmt.Sprintf("%.3f%% now / %.3f%% proposed",
		scenario.Input.CurrentRate, scenario.Input.NewRate))
	writePDFRow(pdf, "Remaining term", fmt.Sprintf("%d years", scenario.Input.RemainingTerm))
	writePDFRow(pdf, "Closing costs", format.Currency(scenario.Input.ClosingCosts))

	pdf.Ln(3)
	writePDFRow(pdf, "Current monthly payment", format.Currency(scenario.Report.CurrentMonthlyPayment))
	writePDFRow(pdf, "New monthly payment", format.Currency(scenario.Report.NewMonthlyPayment))
	writePDFRow(pdf, "Monthly savings", format.USD(scenario.Report.MonthlySavings))
	writePDFRow(pdf, "Break-even time", format.BreakEven(scenario.Report.BreakEvenMonths))

	pdf.Ln(3)
	writePDFRow(pdf, "Current total cost", format.USD(scenario.Report.CurrentTotalCost))
	writePDFRow(pdf, "New total cost", format.USD(scenario.Report.NewTotalCost))
	writePDFRow(pdf, "Net lifetime savings", format.USD(scenario.Report.LifetimeSavings))

	if len(scenario.Sensitivity) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(pdfContentWidth, 8, "Rate Sensitivity", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		writeSensitivityRow(pdf, "Rate", "Monthly Savings", "Lifetime Savings", "Break-even")
		pdf.SetFont("Arial", "", 10)
		for _, point := range scenario.Sensitivity {
			writeSensitivityRow(pdf,
				fmt.Sprintf("%.2f%%", point.NewRate),
				format.USD(point.MonthlySavings),
				format.USD(point.LifetimeSavings),
				format.BreakEven(point.BreakEvenMonths))
		}
	}
}

func writePDFRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.CellFormat(pdfContentWidth/2, 7, label, "LR", 0, "L", false, 0, "")
	pdf.CellFormat(pdfContentWidth/2, 7, value, "LR", 1, "R", false, 0, "")
}

func writeSensitivityRow(pdf *fpdf.Fpdf, cells ...string) {
	width := pdfContentWidth / float64(len(cells))
	for i, cell := range cells {
		align := "R"
		if i == 0 {
			align = "L"
		}
		last := 0
		if i == len(cells)-1 {
			last = 1
		}
		pdf.CellFormat(width, 7, cell, "LR", last, align, false, 0, "")
	}
}

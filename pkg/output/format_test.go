package output

import (
	"strings"
	"testing"

	"github.com/iwvelando/refinance-calculator/internal/compare"
	"github.com/iwvelando/refinance-calculator/internal/config"
	"github.com/iwvelando/refinance-calculator/pkg/refinance"
	"github.com/iwvelando/refinance-calculator/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults(t *testing.T) compare.Results {
	t.Helper()

	betterRate := 5.0
	worseRate := 7.5
	conf := &config.Configuration{
		Defaults: refinance.Input{
			CurrentBalance: 300000,
			CurrentRate:    6.5,
			NewRate:        5.5,
			RemainingTerm:  25,
			ClosingCosts:   5000,
		},
		Scenarios: []config.Scenario{
			{Name: "better offer", Active: true, NewRate: &betterRate},
			{Name: "worse offer", Active: true, NewRate: &worseRate},
		},
		Sensitivity: config.SensitivityConfig{Enabled: true, Span: 0.5, Step: 0.25},
	}

	results, err := compare.Run(nil, conf)
	require.NoError(t, err)
	require.NotNil(t, testutil.FindScenario(results, "better offer"))
	require.NotNil(t, testutil.FindScenario(results, "worse offer"))
	return results
}

func TestPrettyString(t *testing.T) {
	rendered := PrettyString(sampleResults(t))

	assert.Contains(t, rendered, "--- Results for scenario better offer ---")
	assert.Contains(t, rendered, "--- Results for scenario worse offer ---")
	assert.Contains(t, rendered, "Monthly savings")
	assert.Contains(t, rendered, "Break-even time")
	assert.Contains(t, rendered, "Current total cost")
	assert.Contains(t, rendered, "New total cost")
	assert.Contains(t, rendered, "Net lifetime savings")
	assert.Contains(t, rendered, "Rate sensitivity")
	assert.Contains(t, rendered, "Best option: better offer")

	// The unfavorable scenario reports no break-even.
	assert.Contains(t, rendered, "N/A")
}

func TestCsvString(t *testing.T) {
	rendered := CsvString(sampleResults(t))

	lines := strings.Split(strings.TrimSpace(rendered), "\n")
	require.Len(t, lines, 3, "header plus one row per scenario")

	assert.Contains(t, lines[0], `"scenario"`)
	assert.Contains(t, lines[0], `"lifetimeSavings"`)
	assert.Contains(t, lines[1], `"better offer"`)
	assert.Contains(t, lines[2], `"worse offer"`)
	assert.Contains(t, lines[1], `"300000.00"`)

	// Every row carries the same number of fields as the header.
	headerFields := strings.Count(lines[0], ",")
	for _, line := range lines[1:] {
		assert.Equal(t, headerFields, strings.Count(line, ","))
	}
}

func TestCsvStringEmptyResults(t *testing.T) {
	rendered := CsvString(compare.Results{})
	lines := strings.Split(strings.TrimSpace(rendered), "\n")
	assert.Len(t, lines, 1, "header only")
}

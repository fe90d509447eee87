// Package compare evaluates refinance scenarios against the configured
// defaults and ranks the outcomes.
package compare

import (
	"fmt"

	"github.com/iwvelando/refinance-calculator/internal/config"
	"github.com/iwvelando/refinance-calculator/pkg/mathutil"
	"github.com/iwvelando/refinance-calculator/pkg/refinance"
	"github.com/iwvelando/refinance-calculator/pkg/validation"
	"go.uber.org/zap"
)

// DefaultScenarioName labels the implicit scenario evaluated when the
// configuration defines no active scenarios.
const DefaultScenarioName = "defaults"

// ScenarioReport holds the evaluated outcome for one scenario.
type ScenarioReport struct {
	Name        string
	Input       refinance.Input // sanitized
	Report      refinance.Report
	Sensitivity []refinance.SensitivityPoint
	Warnings    []string
}

// Results holds the evaluated scenarios in configuration order.
type Results []ScenarioReport

// Run resolves, sanitizes, and evaluates every active scenario. When the
// configuration defines no active scenarios the defaults are evaluated as a
// single implicit scenario.
func Run(logger *zap.Logger, conf *config.Configuration) (Results, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		return nil, fmt.Errorf("no configuration provided")
	}

	scenarios := conf.ActiveScenarios()
	if len(scenarios) == 0 {
		logger.Debug("no active scenarios, evaluating defaults",
			zap.String("op", "compare.Run"),
		)
		scenarios = []config.Scenario{{Name: DefaultScenarioName, Active: true}}
	}

	results := make(Results, 0, len(scenarios))
	for _, scenario := range scenarios {
		resolved := scenario.Resolve(conf.Defaults)
		sanitized, warnings := validation.SanitizeInput(resolved)
		report := refinance.ComputeReport(sanitized)

		var sensitivity []refinance.SensitivityPoint
		if conf.Sensitivity.Enabled {
			sensitivity = refinance.RateSensitivity(sanitized,
				conf.Sensitivity.SpanOrDefault(), conf.Sensitivity.StepOrDefault())
		}

		logger.Debug(fmt.Sprintf("evaluated scenario %s: monthly savings %.0f, break-even %d months",
			scenario.Name, report.MonthlySavings, report.BreakEvenMonths),
			zap.String("op", "compare.Run"),
		)

		results = append(results, ScenarioReport{
			Name:        scenario.Name,
			Input:       sanitized,
			Report:      report,
			Sensitivity: sensitivity,
			Warnings:    warnings,
		})
	}

	return results, nil
}

// Best returns the scenario with the greatest lifetime savings, breaking ties
// by monthly savings. Returns nil when no scenario has positive lifetime
// savings.
func (r Results) Best() *ScenarioReport {
	var best *ScenarioReport
	for i := range r {
		candidate := &r[i]
		if !mathutil.IsPositive(candidate.Report.LifetimeSavings) {
			continue
		}
		if best == nil ||
			candidate.Report.LifetimeSavings > best.Report.LifetimeSavings ||
			(candidate.Report.LifetimeSavings == best.Report.LifetimeSavings &&
				candidate.Report.MonthlySavings > best.Report.MonthlySavings) {
			best = candidate
		}
	}
	return best
}

// Warnings aggregates the sanitization warnings from all scenarios, prefixed
// with the scenario name.
func (r Results) Warnings() []string {
	var warnings []string
	for _, scenario := range r {
		for _, warning := range scenario.Warnings {
			warnings = append(warnings, fmt.Sprintf("%s: %s", scenario.Name, warning))
		}
	}
	return warnings
}

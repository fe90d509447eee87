// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/refinance-calculator/internal/compare"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the scenario report if found, nil otherwise.
func FindScenario(results compare.Results, name string) *compare.ScenarioReport {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

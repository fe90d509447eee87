// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/refinance-calculator/pkg/constants"
	"github.com/iwvelando/refinance-calculator/pkg/refinance"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for refinance-calculator.
type Configuration struct {
	Defaults    refinance.Input   `yaml:"defaults"`
	Scenarios   []Scenario        `yaml:"scenarios,omitempty"`
	Sensitivity SensitivityConfig `yaml:"sensitivity,omitempty"`
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
	Output      OutputConfig      `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format  string `yaml:"format,omitempty"`  // pretty, csv, pdf
	PDFFile string `yaml:"pdfFile,omitempty"` // destination for pdf output
}

// SensitivityConfig controls the rate sensitivity grid evaluated alongside
// each scenario.
type SensitivityConfig struct {
	Enabled bool    `yaml:"enabled,omitempty"`
	Span    float64 `yaml:"span,omitempty"` // percent swept around the proposed rate
	Step    float64 `yaml:"step,omitempty"` // percent between grid points
}

// SpanOrDefault returns the configured span, or the default when unset.
func (s SensitivityConfig) SpanOrDefault() float64 {
	if s.Span <= 0 {
		return constants.DefaultSensitivitySpan
	}
	return s.Span
}

// StepOrDefault returns the configured step, or the default when unset.
func (s SensitivityConfig) StepOrDefault() float64 {
	if s.Step <= 0 {
		return constants.DefaultSensitivityStep
	}
	return s.Step
}

// Scenario is a named partial override of the default input. Nil fields
// inherit the default value.
type Scenario struct {
	Name           string   `yaml:"name"`
	Active         bool     `yaml:"active"`
	CurrentBalance *float64 `yaml:"currentBalance,omitempty"`
	CurrentRate    *float64 `yaml:"currentRate,omitempty"`
	NewRate        *float64 `yaml:"newRate,omitempty"`
	RemainingTerm  *int     `yaml:"remainingTerm,omitempty"`
	ClosingCosts   *float64 `yaml:"closingCosts,omitempty"`
}

// Resolve applies the scenario's overrides to a base input, returning a new
// input and leaving the base untouched.
func (s Scenario) Resolve(base refinance.Input) refinance.Input {
	resolved := base
	if s.CurrentBalance != nil {
		resolved = resolved.WithCurrentBalance(*s.CurrentBalance)
	}
	if s.CurrentRate != nil {
		resolved = resolved.WithCurrentRate(*s.CurrentRate)
	}
	if s.NewRate != nil {
		resolved = resolved.WithNewRate(*s.NewRate)
	}
	if s.RemainingTerm != nil {
		resolved = resolved.WithRemainingTerm(*s.RemainingTerm)
	}
	if s.ClosingCosts != nil {
		resolved = resolved.WithClosingCosts(*s.ClosingCosts)
	}
	return resolved
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory source, such as a request body.
func LoadConfigurationFromReader(reader io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")
	setDefaults(v)

	if err := v.ReadConfig(reader); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("defaults.currentBalance", constants.DefaultBalance)
	v.SetDefault("defaults.currentRate", constants.DefaultCurrentRate)
	v.SetDefault("defaults.newRate", constants.DefaultNewRate)
	v.SetDefault("defaults.remainingTerm", constants.DefaultTermYears)
	v.SetDefault("defaults.closingCosts", constants.DefaultClosingCosts)
}

// ActiveScenarios returns the scenarios marked active, preserving order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Out-of-range values are not errors; they clamp during
// sanitization, and the warning here points at the config line to fix.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Scenarios) > 0 && len(c.ActiveScenarios()) == 0 {
		warnings = append(warnings, "all scenarios are inactive; only the defaults will be evaluated")
	}

	seen := make(map[string]struct{})
	for i, scenario := range c.Scenarios {
		if scenario.Name == "" {
			warnings = append(warnings, fmt.Sprintf("scenario %d has no name", i+1))
			continue
		}
		if _, duplicate := seen[scenario.Name]; duplicate {
			warnings = append(warnings, fmt.Sprintf("duplicate scenario name '%s'", scenario.Name))
		}
		seen[scenario.Name] = struct{}{}
	}

	warnings = append(warnings, rangeWarnings("defaults", c.Defaults)...)
	for _, scenario := range c.ActiveScenarios() {
		warnings = append(warnings, rangeWarnings(
			fmt.Sprintf("scenario '%s'", scenario.Name), scenario.Resolve(c.Defaults))...)
	}

	if c.Sensitivity.Enabled && c.Sensitivity.Step > c.Sensitivity.Span && c.Sensitivity.Span > 0 {
		warnings = append(warnings, fmt.Sprintf("sensitivity step %.2f exceeds span %.2f; only the configured rate will be evaluated",
			c.Sensitivity.Step, c.Sensitivity.Span))
	}

	return warnings
}

func rangeWarnings(context string, in refinance.Input) []string {
	var warnings []string

	if in.CurrentBalance < constants.MinBalance || in.CurrentBalance > constants.MaxBalance {
		warnings = append(warnings, fmt.Sprintf("%s: balance %.2f is outside %.0f-%.0f and will be clamped",
			context, in.CurrentBalance, constants.MinBalance, constants.MaxBalance))
	}
	if in.CurrentRate < constants.MinRate || in.CurrentRate > constants.MaxRate {
		warnings = append(warnings, fmt.Sprintf("%s: current rate %.2f is outside %.0f-%.0f and will be clamped",
			context, in.CurrentRate, constants.MinRate, constants.MaxRate))
	}
	if in.NewRate < constants.MinRate || in.NewRate > constants.MaxRate {
		warnings = append(warnings, fmt.Sprintf("%s: new rate %.2f is outside %.0f-%.0f and will be clamped",
			context, in.NewRate, constants.MinRate, constants.MaxRate))
	}
	if in.RemainingTerm < constants.MinTermYears || in.RemainingTerm > constants.MaxTermYears {
		warnings = append(warnings, fmt.Sprintf("%s: remaining term %d is outside %d-%d and will be clamped",
			context, in.RemainingTerm, constants.MinTermYears, constants.MaxTermYears))
	}
	if in.ClosingCosts < constants.MinClosingCosts || in.ClosingCosts > constants.MaxClosingCosts {
		warnings = append(warnings, fmt.Sprintf("%s: closing costs %.2f are outside %.0f-%.0f and will be clamped",
			context, in.ClosingCosts, constants.MinClosingCosts, constants.MaxClosingCosts))
	}

	return warnings
}

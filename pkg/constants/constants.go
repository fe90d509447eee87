// Package constants provides shared constants for the refinance-calculator
// application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for cent rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Input ranges the sanitization layer clamps to. These match the ranges the
// web form documents next to each field.
const (
	MinBalance      = 10000.0
	MaxBalance      = 2000000.0
	MinRate         = 0.0
	MaxRate         = 15.0
	MinTermYears    = 1
	MaxTermYears    = 30
	MinClosingCosts = 0.0
	MaxClosingCosts = 50000.0
)

// Default input values, used to seed the web form and any scenario that does
// not override them.
const (
	DefaultBalance      = 300000.0
	DefaultCurrentRate  = 6.5
	DefaultNewRate      = 5.5
	DefaultTermYears    = 25
	DefaultClosingCosts = 5000.0
)

// Sensitivity grid defaults
const (
	// DefaultSensitivitySpan is the percent range swept around the proposed rate
	DefaultSensitivitySpan = 1.0

	// DefaultSensitivityStep is the percent increment between grid points
	DefaultSensitivityStep = 0.25
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatPDF is the PDF report output format
	OutputFormatPDF = "pdf"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultPDFFile is the default path for PDF report output
	DefaultPDFFile = "refinance-report.pdf"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size for the
	// JSON API (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultRateLimitRequests is the default number of API requests allowed
	// per client per window
	DefaultRateLimitRequests = 30

	// DefaultRateLimitWindow is the default rate limit refill window
	DefaultRateLimitWindow = time.Minute

	// DefaultCacheTTL is the default lifetime for cached reports
	DefaultCacheTTL = time.Hour
)

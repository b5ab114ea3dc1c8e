// Package constants provides shared constants for the calcverse application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// WeeksPerYear is the number of weeks used for annualizing weekly figures
	WeeksPerYear = 52

	// WeeksPerMonth is the average number of weeks in a month
	WeeksPerMonth = 4.33

	// DaysPerMonth is the average number of nights in a month
	DaysPerMonth = 30.4

	// HoursPerDay is the length of a billable day
	HoursPerDay = 8

	// QuartersPerYear is the number of estimated tax payments in a year
	QuartersPerYear = 4

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentPrecision is the precision for percentage rounding (1 decimal place)
	PercentPrecision = 10

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// IRSMileageRate is the 2024 IRS standard mileage rate in dollars per mile
	IRSMileageRate = 0.67
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default scenario file name
	DefaultConfigFile = "scenarios.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes every environment override
	EnvPrefix = "CALCVERSE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultBaseURL is used when building share links without a configured base
	DefaultBaseURL = "http://localhost:8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for scenario files (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultRateLimitCapacity is the number of requests a client may burst
	DefaultRateLimitCapacity = 60

	// DefaultRateLimitRefill is the bucket refill interval
	DefaultRateLimitRefill = "1m"

	// DefaultCacheTTL is how long cached evaluations live
	DefaultCacheTTL = "10m"

	// CacheBackendMemory keeps cached evaluations in process
	CacheBackendMemory = "memory"

	// CacheBackendRedis keeps cached evaluations in redis
	CacheBackendRedis = "redis"

	// CacheBackendNone disables caching
	CacheBackendNone = "none"
)

// URL state parameters
const (
	// StateParam carries the base64 JSON input record
	StateParam = "s"

	// ModeParam carries the UI mode when it is not the default
	ModeParam = "mode"
)

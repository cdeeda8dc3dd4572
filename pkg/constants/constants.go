// Package constants provides shared constants for the enhance-forecast application.
package constants

// Enhancement level bounds
const (
	// MinTargetLevel is the lowest enhancement level a plan can target
	MinTargetLevel = 1

	// MaxEnhancementLevel is the highest enhancement level the game supports
	MaxEnhancementLevel = 20

	// MinProtectFromLevel is the lowest level at which protection is ever
	// evaluated; protecting a +1 item is never tested
	MinProtectFromLevel = 2

	// MirrorMinLevel is the lowest level at which a mirror merge is possible
	MirrorMinLevel = 3
)

// BaseSuccessRates holds the per-attempt success probability by current
// enhancement level, before skill, house, tool, and buff adjustments.
var BaseSuccessRates = [MaxEnhancementLevel]float64{
	0.50, 0.45, 0.45, 0.40, 0.40,
	0.40, 0.35, 0.35, 0.35, 0.35,
	0.30, 0.30, 0.30, 0.30, 0.30,
	0.30, 0.30, 0.30, 0.30, 0.30,
}

// Probability model constants
const (
	// MinSuccessRate is the clamp floor for per-attempt success probability;
	// a rate clamped to this floor marks the strategy uncomputable
	MinSuccessRate = 0.0001

	// SkillSurplusBonusPerLevel is the success multiplier gained per point of
	// effective enhancing skill above the item level
	SkillSurplusBonusPerLevel = 0.0005

	// HouseEffectiveLevelsPerRoom is the number of effective enhancing skill
	// levels granted per house room level
	HouseEffectiveLevelsPerRoom = 1.0

	// HouseSuccessBonusPerLevel is the percent success bonus per house room level
	HouseSuccessBonusPerLevel = 1.5

	// BlessedDoubleChance is the base probability that a successful attempt
	// under blessed tea advances two levels instead of one
	BlessedDoubleChance = 0.10

	// BaseActionSeconds is the unmodified duration of one enhancement attempt
	BaseActionSeconds = 12.0

	// ConvergenceEpsilon bounds the reset-mass term when solving the expected
	// attempt recurrence; chains at or beyond it are uncomputable
	ConvergenceEpsilon = 1e-12
)

// Price resolution constants
const (
	// AskInflationThreshold is the strict ask/bid (and ask/production) ratio
	// above which an ask price is treated as manipulated
	AskInflationThreshold = 1.3

	// ArtisanDiscount is the material cost multiplier applied when computing
	// production cost from a recipe
	ArtisanDiscount = 0.90

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatXLSX is the Excel workbook output format
	OutputFormatXLSX = "xlsx"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML
	// plan requests (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultPlanCacheTTLSeconds is the default lifetime of a cached plan
	// response; market snapshots go stale quickly
	DefaultPlanCacheTTLSeconds = 300
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for coin comparisons
	CurrencyTolerance = 0.01

	// DecimalPrecision is the precision for coin rounding (2 decimal places)
	DecimalPrecision = 100

	// MaxHouseLevel is the highest house room level the game supports
	MaxHouseLevel = 8
)

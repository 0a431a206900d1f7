package config

// Analysis defaults.
const (
	// DefaultWorkers selects GOMAXPROCS.
	DefaultWorkers          = 0
	DefaultInclude          = "**/*.json"
	DefaultRespectGitignore = true
	DefaultSkipVendor       = true
	DefaultValidate         = false
)

// Rule engine defaults.
const (
	DefaultDynamicRules   = false
	DefaultATFDPercentile = 20.0
	DefaultWMCPercentile  = 10.0
)

// Output defaults.
const (
	DefaultFormat    = "table"
	DefaultPrecision = 3
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Telemetry defaults.
const (
	DefaultSampleRatio = 0.0
)

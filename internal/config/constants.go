package config

const (
	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 50
	DefaultMaxLogBackups = 3

	// Provider Defaults
	DefaultProviderTimeoutSecs = 30

	// Journal Defaults
	DefaultJournalEnabled = true
)

// Provider error handling modes.
const (
	ProviderOnErrorIgnore = "ignore"
	ProviderOnErrorFail   = "fail"
)

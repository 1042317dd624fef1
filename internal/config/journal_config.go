package config

// JournalConfig holds the configuration for the scan journal.
//
// Path may be left empty, in which case the journal lives under the
// repository's git directory. Journal writes are best-effort and never
// change a scan verdict.
type JournalConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

// NewDefaultJournalConfig creates a new JournalConfig with default values.
func NewDefaultJournalConfig() JournalConfig {
	return JournalConfig{
		Enabled: DefaultJournalEnabled,
	}
}

package config

// ProviderConfig holds the configuration for pattern provider execution.
//
// TimeoutSeconds bounds how long a single provider subprocess may run;
// zero disables the bound. OnError decides whether a provider failure is
// swallowed (the default) or escalated as a scan error.
type ProviderConfig struct {
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"min=0"`
	OnError        string `json:"on_error,omitempty" yaml:"on_error,omitempty" validate:"omitempty,providererrormode"`
}

// NewDefaultProviderConfig creates a new ProviderConfig with default values.
func NewDefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		TimeoutSeconds: DefaultProviderTimeoutSecs,
		OnError:        ProviderOnErrorIgnore,
	}
}

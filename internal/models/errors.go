package models

import "fmt"

// ConfigError is the only fatal error class in the system: the entity catalog
// or configuration is unusable and no matching can happen without it. Every
// other failure (pattern noise, generation failure, missing prior content) is
// absorbed locally and surfaced as a degradation flag, never as an error.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config error in %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps err as a fatal configuration error.
func NewConfigError(path string, err error) *ConfigError {
	return &ConfigError{Path: path, Err: err}
}

// Degradation flag names recorded on a ReportBundle. These identify which
// stage or fallback produced reduced output so the caller can render a
// warning without discarding the rest of the report.
const (
	FlagGenerationFailure = "generation_failure"
	FlagParseDegraded     = "parse_degraded"
	FlagPreviousFallback  = "previous_content_fallback"
	FlagPreviousMissing   = "previous_content_unavailable"
)

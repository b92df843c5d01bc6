package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// validator is implemented by settings that have cross-field constraints.
type validator interface {
	Validate() error
}

// ParseEnv loads configuration from TCGPOCKET_* environment variables, then validates the
// result when target knows how.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if v, ok := target.(validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}
	return nil
}

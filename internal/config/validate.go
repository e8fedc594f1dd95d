package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. A missing TMDB token is not an
// error; lookup-backed commands degrade to manual entry without one.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateUI(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if strings.TrimSpace(c.TMDB.BaseURL) == "" {
		return errors.New("tmdb.base_url must be set")
	}
	if c.TMDB.RequestTimeout <= 0 {
		return errors.New("tmdb.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateUI() error {
	if c.UI.DefaultLimit <= 0 {
		return errors.New("ui.default_limit must be positive")
	}
	switch c.UI.Color {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("ui.color must be auto, always, or never (got %q)", c.UI.Color)
	}
}

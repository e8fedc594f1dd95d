package testsupport

import (
	"path/filepath"
	"testing"

	"reelist/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	cfg *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.TMDB.Token = "test-token"

	builder := &configBuilder{cfg: &cfgVal}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithTMDBToken sets the TMDB token on the test config. An empty token
// simulates a machine with lookup disabled.
func WithTMDBToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.Token = token
	}
}

package cmdutil

import (
	"context"

	"github.com/azuyamat/mia/internal/config"
)

type configKey struct{}

type loadedConfig struct {
	cfg *config.Config
	err error
}

// WithConfig returns a context carrying the result of loading the config, so
// commands share one load per invocation.
func WithConfig(ctx context.Context, cfg *config.Config, err error) context.Context {
	return context.WithValue(ctx, configKey{}, loadedConfig{cfg: cfg, err: err})
}

// ConfigFrom returns the config stored by WithConfig. When ctx carries none,
// the config is loaded now.
func ConfigFrom(ctx context.Context) (*config.Config, error) {
	if ctx != nil {
		if loaded, ok := ctx.Value(configKey{}).(loadedConfig); ok {
			return loaded.cfg, loaded.err
		}
	}
	return config.Load()
}

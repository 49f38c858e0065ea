package config

import (
	"fmt"

	"github.com/yndnr/hashgen-go/internal/infra/confloader"
)

// Load builds the effective configuration: defaults, then the YAML file at
// path (if any), then HASHGEN_* environment variables, then overrides.
// The result is not verified.
func Load(path string, overrides map[string]any) (*BenchConfig, error) {
	cfg := Default()

	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithEnvSections("record", "log"),
		confloader.WithOverrides(overrides),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

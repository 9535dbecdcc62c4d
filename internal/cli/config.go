package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvka-141/pgseed/internal/config"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// loadProjectConfig reads --config, or ./pgseed.yaml when the flag is unset.
// A missing default file yields an empty config; a missing explicit file is
// an error.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.ProjectConfig
	var err error
	if path == "" {
		cfg, err = config.Load(".")
	} else {
		cfg, err = config.LoadFile(path)
	}

	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, config.ErrConfigNotFound) && path == "":
		return &config.ProjectConfig{}, nil
	case errors.Is(err, config.ErrConfigNotFound):
		return nil, fmt.Errorf("config file %s not found: %w", path, pgseed.ErrInvalidConfig)
	default:
		return nil, fmt.Errorf("failed to load config: %w: %w", err, pgseed.ErrInvalidConfig)
	}
}

// firstSet returns the flag value if the user set it, else the first
// non-empty fallback, else the flag's default.
func firstSet(cmd *cobra.Command, flag string, fallbacks ...string) string {
	value, _ := cmd.Flags().GetString(flag)
	if cmd.Flags().Changed(flag) {
		return value
	}
	for _, f := range fallbacks {
		if f != "" {
			return f
		}
	}
	return value
}

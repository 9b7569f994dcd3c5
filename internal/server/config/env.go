package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays fields whose environment variable is set; unset
// variables leave the current value alone. Malformed values panic, as the
// other loaders do.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}

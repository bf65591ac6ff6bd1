package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config with values from the environment. Variables left
// unset keep the earlier value; parse failures (e.g. a malformed duration)
// panic like the other loaders.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}

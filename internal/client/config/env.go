package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays POSTBOARD_* environment variables. Unset variables leave
// fields untouched; malformed values panic.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}

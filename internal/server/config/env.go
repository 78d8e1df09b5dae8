package config

import (
	"github.com/dmitrijs2005/postboard/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// parseEnv overlays POSTBOARD_* environment variables onto config. Variables
// are first loaded from the dotenv file named by -env, or from ./.env when
// present. Unset variables leave fields untouched.
func parseEnv(config *Config) {
	if envFile := flagx.EnvFileFlags(); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		panic(err)
	}
}

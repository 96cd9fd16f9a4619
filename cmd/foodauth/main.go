package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/you/foodauth/internal/app"
	"github.com/you/foodauth/internal/config"
)

func main() {
	path := flag.String("config", envOr("CONFIG_PATH", "config/config.yml"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := app.Run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

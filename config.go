package main

import (
	"os"
	"strconv"

	zlog "github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config holds server settings. Values come from config.yaml when present,
// then env vars (PORT, SM_ENV, SM_DB, SM_STATIC_DIR), then flags.
type Config struct {
	Port      int    `yaml:"port"`
	Env       string `yaml:"env"`
	DB        string `yaml:"db"`
	StaticDir string `yaml:"static_dir"`
}

func loadConfig(path string) Config {
	cfg := Config{
		Port:      4322,
		Env:       "development",
		DB:        "sales_manage.db",
		StaticDir: "static",
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			zlog.Warn().Err(err).Str("path", path).Msg("config: parse failed, using defaults")
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("SM_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("SM_DB"); v != "" {
		cfg.DB = v
	}
	if v := os.Getenv("SM_STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	return cfg
}

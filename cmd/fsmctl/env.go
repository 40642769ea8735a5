package main

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var errParsingEnv = errors.New("failed to parse environment variables")

// envConfig is the process configuration of fsmctl
type envConfig struct {
	LogLevel  string `env:"FSMCTL_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"FSMCTL_LOG_FORMAT" envDefault:"text"`
}

func loadEnv() (envConfig, error) {
	// The .env file is optional
	_ = godotenv.Load()

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Join(errParsingEnv, err)
	}
	return cfg, nil
}

package config

import (
	"flag"
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Addr         string `env:"RUN_ADDRESS" env-default:"localhost:8080"`
	DatabaseURL  string `env:"DATABASE_URL"`
	QuoteAPIURL  string `env:"QUOTE_API_URL" env-default:"https://www.alphavantage.co"`
	QuoteAPIKey  string `env:"QUOTE_API_KEY"`
	PrivateKey   string `env:"PRIVATE_KEY" env-default:"privatekey"`
	StartingCash string `env:"STARTING_CASH" env-default:"10000"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.Addr, "a", "localhost:8080", "HTTP server address")
	flag.StringVar(&cfg.DatabaseURL, "d", "", "database URL")
	flag.StringVar(&cfg.QuoteAPIKey, "k", "", "quote provider API key")

	flag.Parse()

	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't read environment variables: %w", err)
	}

	if cfg.QuoteAPIKey == "" {
		return nil, fmt.Errorf("quote provider API key is not set")
	}

	return cfg, nil
}

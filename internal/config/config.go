package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required,notEmpty"`

	// Storage
	DataPath string `env:"BOT_DATA_PATH,required,notEmpty"`

	// Membership housekeeping
	GreetingTTL time.Duration `env:"GREETING_TTL" envDefault:"15m"`

	// Dispatch
	MaxConcurrentHandlers int `env:"MAX_CONCURRENT_HANDLERS" envDefault:"16"`

	// Shown by /help
	RepoURL string `env:"REPO_URL" envDefault:"https://github.com/thedioxider/api-club-bot"`
}

// Parse reads the configuration from the environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrentHandlers < 1 {
		cfg.MaxConcurrentHandlers = 1
	}
	return cfg, nil
}

func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

package config

import (
	"log"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	DBDSN    string `env:"DB_DSN" envDefault:"robomart.db"`
	MediaDir string `env:"MEDIA_DIR" envDefault:"./web/media"`
	LogFile  string `env:"LOG_FILE" envDefault:"./robomart.log"`

	// Checkout defaults. The WhatsApp number is a fallback only; the
	// settings table takes precedence when the key is present.
	WhatsAppNumber string `env:"WHATSAPP_NUMBER" envDefault:"919876543210"`
	HomeState      string `env:"HOME_STATE" envDefault:"Kerala"`
}

func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("[config] parse: %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile)
	return cfg
}

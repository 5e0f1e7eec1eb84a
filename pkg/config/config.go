package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"false"`

	CartSessionTTL time.Duration `env:"CART_SESSION_TTL" envDefault:"24h"`

	CheckoutDelay         time.Duration `env:"CHECKOUT_DELAY" envDefault:"2s"`
	PaymentTimeout        time.Duration `env:"PAYMENT_TIMEOUT" envDefault:"5s"`
	CheckoutMaxConcurrent int           `env:"CHECKOUT_MAX_CONCURRENT" envDefault:"10"`
}

func Load() (Config, error) {
	return LoadEnv(nil)
}

// LoadEnv parses from the given environment instead of the process one
// when environ is non-nil.
func LoadEnv(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return Config{}, fmt.Errorf("HTTP_PORT out of range: %d", cfg.HTTPPort)
	}
	if cfg.CheckoutMaxConcurrent <= 0 {
		return Config{}, fmt.Errorf("CHECKOUT_MAX_CONCURRENT must be positive: %d", cfg.CheckoutMaxConcurrent)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

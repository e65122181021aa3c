package main

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process-wide configuration, loaded once at startup from
// environment variables. SBS_DICT points at the dictionary the WordIndex
// is built from. The core packages never read the environment themselves:
// the case mode, validator throttle, timeout and cache size reach them as
// arguments, and the remaining fields configure only the server.
type Config struct {
	Addr                string        `env:"SBS_ADDR" envDefault:":8080"`
	DictPath            string        `env:"SBS_DICT" envDefault:"data/dictionary.txt"`
	CaseSensitive       bool          `env:"SBS_CASE_SENSITIVE" envDefault:"false"`
	RateLimitPerMinute  int           `env:"SBS_RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	ValidatorThrottle   time.Duration `env:"SBS_VALIDATOR_THROTTLE" envDefault:"100ms"`
	ValidatorTimeout    time.Duration `env:"SBS_VALIDATOR_TIMEOUT" envDefault:"10s"`
	ValidationCacheSize int           `env:"SBS_VALIDATION_CACHE_SIZE" envDefault:"4096"`
	Version             string        `env:"SBS_VERSION" envDefault:"dev"`
}

// LoadConfig parses Config from the process environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

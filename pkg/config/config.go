package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is read entirely from the environment. Credentials have no
// defaults on purpose; the driver treats their absence as a diagnostic,
// not a fatal error.
type Config struct {
	Email    string        `env:"DNOTE_EMAIL"`
	Password string        `env:"DNOTE_PASSWORD"`
	BaseURL  string        `env:"DNOTE_API_URL" env-default:"https://app.getdnote.com/api/v3"`
	Timeout  time.Duration `env:"DNOTE_HTTP_TIMEOUT" env-default:"30s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// HasCredentials reports whether both credential variables are set.
func (c Config) HasCredentials() bool {
	return c.Email != "" && c.Password != ""
}

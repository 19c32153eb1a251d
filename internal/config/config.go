package config

import "github.com/caarlos0/env/v10"

// Config centralizes runtime configuration for the web console.
// All values come from the environment; main loads a .env file first in
// development.
type Config struct {
	// Addr is the listen address for the web console.
	Addr string `env:"CHAMA_ADDR" envDefault:":8080"`
	// APIBaseURL points at the chama REST API this console talks to.
	APIBaseURL string `env:"CHAMA_API_BASE_URL" envDefault:"http://127.0.0.1:5000"`
	// DBPath is the SQLite file holding persisted web sessions.
	DBPath string `env:"CHAMA_DB_PATH" envDefault:"chamaweb.db"`
	// CSRFKey is the hex-encoded 32-byte CSRF secret. Required in production.
	CSRFKey string `env:"CHAMA_CSRF_KEY"`
	// Env is the deployment environment name ("development", "production").
	Env string `env:"CHAMA_ENV" envDefault:"development"`

	// Resend delivery for landing-page enquiries. Empty key selects the
	// noop sender.
	ResendKey   string `env:"CHAMA_RESEND_KEY"`
	EmailFrom   string `env:"CHAMA_EMAIL_FROM" envDefault:"Chama <noreply@chama.local>"`
	EmailTo     string `env:"CHAMA_ENQUIRY_TO" envDefault:"info@chama.local"`
	ContentPath string `env:"CHAMA_CONTENT_PATH" envDefault:"content"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the console runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every tunable the server reads from the environment.
type Config struct {
	Port     string `env:"PORT, default=8080"`
	Env      string `env:"ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret signs the session cookies for both roles.
	SessionSecret string `env:"SESSION_SECRET, default=dev-session-secret"`

	// UploadDir is where product and post images land; served under /uploads.
	UploadDir string `env:"UPLOAD_DIR, default=./public/uploads"`

	// DatabaseURL wins over the individual DB_* fields when set.
	DatabaseURL string `env:"DATABASE_URL"`
	DB          DBConfig

	SMS       SMSConfig
	Story     StoryConfig
	Translate TranslateConfig
}

type DBConfig struct {
	Host     string `env:"DB_HOST, default=localhost"`
	Port     string `env:"DB_PORT, default=5432"`
	User     string `env:"DB_USER, default=postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME, default=artisan_market"`
}

// SMSConfig selects and configures the outbound SMS gateway.
// Provider is one of: console, twilio, fast2sms.
type SMSConfig struct {
	Provider       string `env:"SMS_PROVIDER, default=console"`
	TwilioSID      string `env:"TWILIO_ACCOUNT_SID"`
	TwilioToken    string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFrom     string `env:"TWILIO_FROM_NUMBER"`
	Fast2SMSKey    string `env:"FAST2SMS_API_KEY"`
	Fast2SMSSender string `env:"FAST2SMS_SENDER_ID, default=ARTISAN"`
}

// StoryConfig points at the external AI story-generation backend.
type StoryConfig struct {
	BackendURL string `env:"STORYTELLING_API_URL, default=http://localhost:8000"`
}

// TranslateConfig points at the external translation API.
type TranslateConfig struct {
	APIURL string `env:"TRANSLATE_API_URL, default=https://translation.googleapis.com/language/translate/v2"`
	APIKey string `env:"TRANSLATE_API_KEY"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN builds the postgres connection string, preferring DATABASE_URL.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DB.Host, c.DB.User, c.DB.Password, c.DB.Name, c.DB.Port,
	)
}

// Production reports whether the server runs with production hardening
// (secure cookies, generic error bodies).
func (c *Config) Production() bool {
	return c.Env == "production"
}

package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v3"
	"github.com/go-ozzo/ozzo-validation/v3/is"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

var ErrInvalidConfig = fmt.Errorf("invalid configuration")

// MissingVarsError reports required environment variables that are not set.
type MissingVarsError struct {
	Vars []string
}

func (e *MissingVarsError) Error() string {
	return fmt.Sprintf("required environment variables are not set: %s", strings.Join(e.Vars, ", "))
}

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken string `env:"PRACTICUM_TOKEN"`
	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	TelegramChatID string `env:"TELEGRAM_CHAT_ID"`

	Endpoint      string        `env:"PRACTICUM_ENDPOINT" env-default:"https://practicum.yandex.ru/api/user_api/homework_statuses/"`
	RetryPeriod   time.Duration `env:"RETRY_PERIOD" env-default:"10m"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`
	AdvanceCursor bool          `env:"ADVANCE_CURSOR" env-default:"false"`

	DatabaseURL string `env:"DATABASE_URL"` // Journal is disabled when empty

	LogLevel          string `env:"LOG_LEVEL" env-default:"debug"`
	Environment       string `env:"ENVIRONMENT" env-default:"development"`
	LogFile           string `env:"LOG_FILE" env-default:"homework_bot.log"`
	LogFileMaxSizeMB  int    `env:"LOG_FILE_MAX_SIZE_MB" env-default:"50"`
	LogFileMaxBackups int    `env:"LOG_FILE_MAX_BACKUPS" env-default:"5"`
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.checkRequired(); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func (c *AppConfig) checkRequired() error {
	required := []struct {
		name  string
		value string
	}{
		{"PRACTICUM_TOKEN", c.PracticumToken},
		{"TELEGRAM_TOKEN", c.TelegramToken},
		{"TELEGRAM_CHAT_ID", c.TelegramChatID},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return &MissingVarsError{Vars: missing}
	}
	return nil
}

func (c *AppConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Endpoint, validation.Required, is.URL),
		validation.Field(&c.RetryPeriod, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.HTTPTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.LogFile, validation.Required),
		validation.Field(&c.LogFileMaxSizeMB, validation.Required, validation.Min(1)),
		validation.Field(&c.LogFileMaxBackups, validation.Min(0)),
	)
}

// JournalEnabled reports whether sent notifications should be recorded in Postgres.
func (c *AppConfig) JournalEnabled() bool {
	return c.DatabaseURL != ""
}

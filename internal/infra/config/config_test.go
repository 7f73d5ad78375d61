package config

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PRACTICUM_TOKEN", "practicum-token")
	t.Setenv("TELEGRAM_TOKEN", "telegram-token")
	t.Setenv("TELEGRAM_CHAT_ID", "123456")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %q, want %q", cfg.Endpoint, DefaultEndpoint)
	}
	if cfg.RetryPeriod != 10*time.Minute {
		t.Errorf("RetryPeriod = %v, want 10m", cfg.RetryPeriod)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout)
	}
	if cfg.AdvanceCursor {
		t.Error("AdvanceCursor should default to false")
	}
	if cfg.JournalEnabled() {
		t.Error("journal should be disabled without DATABASE_URL")
	}
	if cfg.LogLevel != "debug" || cfg.Environment != "development" {
		t.Errorf("LogLevel/Environment = %q/%q", cfg.LogLevel, cfg.Environment)
	}
	if cfg.LogFileMaxSizeMB != 50 || cfg.LogFileMaxBackups != 5 {
		t.Errorf("log rotation = %d MB / %d backups", cfg.LogFileMaxSizeMB, cfg.LogFileMaxBackups)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PRACTICUM_ENDPOINT", "http://localhost:8080/statuses/")
	t.Setenv("RETRY_PERIOD", "30s")
	t.Setenv("ADVANCE_CURSOR", "true")
	t.Setenv("DATABASE_URL", "postgres://bot@localhost/bot?sslmode=disable")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Endpoint != "http://localhost:8080/statuses/" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.RetryPeriod != 30*time.Second {
		t.Errorf("RetryPeriod = %v", cfg.RetryPeriod)
	}
	if !cfg.AdvanceCursor {
		t.Error("AdvanceCursor = false, want true")
	}
	if !cfg.JournalEnabled() {
		t.Error("journal should be enabled")
	}
	if cfg.LogLevel != "warn" || cfg.Environment != "production" {
		t.Errorf("LogLevel/Environment not normalized: %q/%q", cfg.LogLevel, cfg.Environment)
	}
}

func TestLoad_MissingVars(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]string
		missing []string
	}{
		{
			name:    "all missing",
			set:     map[string]string{},
			missing: []string{"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID"},
		},
		{
			name:    "chat id missing",
			set:     map[string]string{"PRACTICUM_TOKEN": "a", "TELEGRAM_TOKEN": "b"},
			missing: []string{"TELEGRAM_CHAT_ID"},
		},
		{
			name:    "blank token counts as missing",
			set:     map[string]string{"PRACTICUM_TOKEN": "  ", "TELEGRAM_TOKEN": "b", "TELEGRAM_CHAT_ID": "c"},
			missing: []string{"PRACTICUM_TOKEN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.set {
				t.Setenv(k, v)
			}

			_, err := Load()
			var missingErr *MissingVarsError
			if !errors.As(err, &missingErr) {
				t.Fatalf("Load() error = %v, want *MissingVarsError", err)
			}
			if !reflect.DeepEqual(missingErr.Vars, tt.missing) {
				t.Errorf("missing = %v, want %v", missingErr.Vars, tt.missing)
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"retry period too short", "RETRY_PERIOD", "500ms"},
		{"zero http timeout", "HTTP_TIMEOUT", "0s"},
		{"endpoint not a url", "PRACTICUM_ENDPOINT", "not a url"},
		{"negative backups", "LOG_FILE_MAX_BACKUPS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

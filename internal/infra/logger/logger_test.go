package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

func TestNewWithOutput_Level(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  logrus.Level
	}{
		{"debug", "debug", logrus.DebugLevel},
		{"error", "error", logrus.ErrorLevel},
		{"invalid falls back to info", "loud", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := newWithOutput(&config.AppConfig{LogLevel: tt.level, Environment: "development"}, &buf)
			if log.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", log.GetLevel(), tt.want)
			}
		})
	}
}

func TestNewWithOutput_InvalidLevelWarns(t *testing.T) {
	var buf bytes.Buffer
	newWithOutput(&config.AppConfig{LogLevel: "loud"}, &buf)
	if !strings.Contains(buf.String(), "Invalid log level 'loud'") {
		t.Errorf("expected warning about invalid level, got %q", buf.String())
	}
}

func TestNewWithOutput_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput(&config.AppConfig{LogLevel: "info", Environment: "production"}, &buf)

	Component(log, "watcher").Info("no new status")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "watcher" || entry["msg"] != "no new status" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNewWithOutput_DevelopmentIsText(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput(&config.AppConfig{LogLevel: "info", Environment: "development"}, &buf)

	log.Info("started")
	out := buf.String()
	if !strings.Contains(out, `msg=started`) || strings.Contains(out, "\x1b[") {
		t.Errorf("unexpected text output: %q", out)
	}
}

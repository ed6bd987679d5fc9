package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
telegram:
  bot_token: token
  chat_id: "42"
location:
  city: London
  country: United Kingdom
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Forecast.HorizonDays != 7 {
		t.Errorf("horizon default = %d, want 7", cfg.Forecast.HorizonDays)
	}
	if cfg.Advice.TargetHumidityBelow != 60 {
		t.Errorf("target default = %.0f, want 60", cfg.Advice.TargetHumidityBelow)
	}
	if !cfg.Advice.PreferDaytime {
		t.Error("prefer_daytime must default to true")
	}
	if len(cfg.Scenarios) != 1 || cfg.Scenarios[0].Preset != "one-bed-flat" {
		t.Errorf("scenario default = %+v, want one-bed-flat preset", cfg.Scenarios)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing bot token", func(c *Config) { c.Telegram.BotToken = "" }},
		{"missing chat id", func(c *Config) { c.Telegram.ChatID = "" }},
		{"no location at all", func(c *Config) {
			c.Location.City, c.Location.Country = "", ""
			c.Location.Latitude, c.Location.Longitude = 0, 0
		}},
		{"horizon too long", func(c *Config) { c.Forecast.HorizonDays = 17 }},
		{"target out of range", func(c *Config) { c.Advice.TargetHumidityBelow = 120 }},
		{"negative penalty", func(c *Config) { c.Advice.ConfidencePenalty = -1 }},
		{"latitude out of range", func(c *Config) { c.Location.Latitude = 91 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, `
telegram:
  bot_token: token
  chat_id: "42"
location:
  city: London
  country: United Kingdom
`))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("HORIZON_DAYS", "3")

	cfg, err := Load(writeConfig(t, `
telegram:
  bot_token: file-token
  chat_id: "42"
forecast:
  horizon_days: 10
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telegram.BotToken != "env-token" {
		t.Errorf("bot token = %q, want env override", cfg.Telegram.BotToken)
	}
	if cfg.Forecast.HorizonDays != 3 {
		t.Errorf("horizon = %d, want env override 3", cfg.Forecast.HorizonDays)
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ScenarioConfig describes one housing scenario to evaluate. Either Preset
// names a built-in scenario, or the coefficients are given in full.
type ScenarioConfig struct {
	Preset                 string  `yaml:"preset"`
	Name                   string  `yaml:"name"`
	VentilationRate        float64 `yaml:"ventilation_rate"`
	MoistureGenerationRate float64 `yaml:"moisture_generation_rate"`
	ThermalMass            float64 `yaml:"thermal_mass"`
	BaselineIndoorHumidity float64 `yaml:"baseline_indoor_humidity"`
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Location struct {
		City      string  `yaml:"city"`
		Country   string  `yaml:"country"`
		Latitude  float64 `yaml:"latitude"`
		Longitude float64 `yaml:"longitude"`
	} `yaml:"location"`
	Forecast struct {
		BaseURL     string `yaml:"base_url"`
		HorizonDays int    `yaml:"horizon_days"`
	} `yaml:"forecast"`
	Advice struct {
		TargetHumidityBelow float64 `yaml:"target_humidity_below"`
		PreferDaytime       bool    `yaml:"prefer_daytime"`
		ConfidencePenalty   float64 `yaml:"confidence_penalty"`
		MinWindowHours      int     `yaml:"min_window_hours"`
		MaxCandidates       int     `yaml:"max_candidates"`
	} `yaml:"advice"`
	Schedule struct {
		DailyCron   string `yaml:"daily_cron"`
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Scenarios []ScenarioConfig `yaml:"scenarios"`
	Journal   struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"journal"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Advice.PreferDaytime = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("OPEN_METEO_BASE_URL"); v != "" {
		cfg.Forecast.BaseURL = v
	}
	if v := os.Getenv("HORIZON_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.HorizonDays = days
		}
	}
	if v := os.Getenv("LOCATION_CITY"); v != "" {
		cfg.Location.City = v
	}
	if v := os.Getenv("LOCATION_COUNTRY"); v != "" {
		cfg.Location.Country = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.ListenAddr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Forecast.HorizonDays == 0 {
		cfg.Forecast.HorizonDays = 7
	}
	if cfg.Advice.TargetHumidityBelow == 0 {
		cfg.Advice.TargetHumidityBelow = 60
	}
	if cfg.Advice.ConfidencePenalty == 0 {
		cfg.Advice.ConfidencePenalty = 0.2
	}
	if cfg.Advice.MinWindowHours == 0 {
		cfg.Advice.MinWindowHours = 4
	}
	if cfg.Advice.MaxCandidates == 0 {
		cfg.Advice.MaxCandidates = 5
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 7 * * *"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 0 13,19 * * *"
	}
	if len(cfg.Scenarios) == 0 {
		cfg.Scenarios = []ScenarioConfig{{Preset: "one-bed-flat"}}
	}
	if cfg.Journal.StateFile == "" {
		cfg.Journal.StateFile = "data/advice_journal.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/humid_sentinel.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and in range.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if !c.HasCoordinates() && (c.Location.City == "" || c.Location.Country == "") {
		return fmt.Errorf("location requires either latitude/longitude or city and country")
	}
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("location.latitude must be in [-90, 90]")
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("location.longitude must be in [-180, 180]")
	}
	if c.Forecast.HorizonDays < 1 || c.Forecast.HorizonDays > 16 {
		return fmt.Errorf("forecast.horizon_days must be in [1, 16]")
	}
	if c.Advice.TargetHumidityBelow <= 0 || c.Advice.TargetHumidityBelow > 100 {
		return fmt.Errorf("advice.target_humidity_below must be in (0, 100]")
	}
	if c.Advice.ConfidencePenalty < 0 {
		return fmt.Errorf("advice.confidence_penalty must not be negative")
	}
	if c.Advice.MinWindowHours < 1 {
		return fmt.Errorf("advice.min_window_hours must be positive")
	}
	if c.Advice.MaxCandidates < 1 {
		return fmt.Errorf("advice.max_candidates must be positive")
	}
	return nil
}

// HasCoordinates reports whether explicit coordinates are configured,
// letting the advisor skip geocoding entirely.
func (c *Config) HasCoordinates() bool {
	return c.Location.Latitude != 0 || c.Location.Longitude != 0
}

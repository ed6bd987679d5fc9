package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"HumidSentinel/internal/config"
	"HumidSentinel/internal/forecast"
	"HumidSentinel/internal/geocode"
	"HumidSentinel/internal/journal"
	"HumidSentinel/internal/metrics"
	"HumidSentinel/internal/model"
	"HumidSentinel/internal/notifier"
	"HumidSentinel/internal/recorder"
	"HumidSentinel/internal/scenario"
	"HumidSentinel/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] HumidSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Resolve location
	lat, lon := cfg.Location.Latitude, cfg.Location.Longitude
	if !cfg.HasCoordinates() {
		gc := geocode.NewGeocoder("", cfg.Proxy)
		loc, err := gc.Forward(cfg.Location.City, cfg.Location.Country)
		if err != nil {
			log.Fatalf("[FATAL] geocode %s, %s: %v", cfg.Location.City, cfg.Location.Country, err)
		}
		lat, lon = loc.Latitude, loc.Longitude
		log.Printf("[INFO] resolved %s, %s to %.4f, %.4f", loc.City, loc.Country, lat, lon)
	}

	// Init fetcher
	fetcher := forecast.NewOpenMeteoFetcher(cfg.Forecast.BaseURL, cfg.Proxy)
	log.Printf("[INFO] forecast source: %s", fetcher.Name())

	// Build scenarios
	scenarios, err := buildScenarios(cfg.Scenarios)
	if err != nil {
		log.Fatalf("[FATAL] build scenarios: %v", err)
	}
	log.Printf("[INFO] evaluating %d housing scenarios", len(scenarios))

	// Init advice journal
	jm, err := journal.NewManager(cfg.Journal.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init advice journal: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init metrics
	mc, err := metrics.NewCollector()
	if err != nil {
		log.Fatalf("[FATAL] init metrics: %v", err)
	}
	if cfg.Metrics.ListenAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", mc.Handler())
			log.Printf("[INFO] metrics listening on %s", cfg.Metrics.ListenAddr)
			if err := http.ListenAndServe(cfg.Metrics.ListenAddr, mux); err != nil {
				log.Printf("[ERROR] metrics listener: %v", err)
			}
		}()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	opts := scheduler.Options{
		Latitude:    lat,
		Longitude:   lon,
		HorizonDays: cfg.Forecast.HorizonDays,
		Policy: model.ScoringPolicy{
			TargetHumidityBelow: cfg.Advice.TargetHumidityBelow,
			PreferDaytime:       cfg.Advice.PreferDaytime,
			ConfidencePenalty:   cfg.Advice.ConfidencePenalty,
		},
		MinWindow:     time.Duration(cfg.Advice.MinWindowHours) * time.Hour,
		MaxCandidates: cfg.Advice.MaxCandidates,
	}
	sched := scheduler.NewScheduler(ctx, opts, fetcher, scenarios, jm, tn, rec, mc)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily advisory now")
		go sched.RunDailyNow()
	}

	log.Println("[INFO] HumidSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] HumidSentinel stopped")
}

func buildScenarios(configs []config.ScenarioConfig) ([]*scenario.HousingScenario, error) {
	scenarios := make([]*scenario.HousingScenario, 0, len(configs))
	for _, sc := range configs {
		var built *scenario.HousingScenario
		var err error
		if sc.Preset != "" {
			built, err = scenario.FromPreset(sc.Preset)
		} else {
			built, err = scenario.New(sc.Name, sc.VentilationRate, sc.MoistureGenerationRate, sc.ThermalMass, sc.BaselineIndoorHumidity)
		}
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name+sc.Preset, err)
		}
		scenarios = append(scenarios, built)
	}
	return scenarios, nil
}

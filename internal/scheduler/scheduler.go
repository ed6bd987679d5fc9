package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"HumidSentinel/internal/advisory"
	"HumidSentinel/internal/forecast"
	"HumidSentinel/internal/journal"
	"HumidSentinel/internal/metrics"
	"HumidSentinel/internal/model"
	"HumidSentinel/internal/notifier"
	"HumidSentinel/internal/recorder"
	"HumidSentinel/internal/scenario"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron tasks that drive the advisory pipeline.
type Scheduler struct {
	Cron          *cron.Cron
	Fetcher       forecast.Fetcher
	Latitude      float64
	Longitude     float64
	HorizonDays   int
	Policy        model.ScoringPolicy
	MinWindow     time.Duration
	MaxCandidates int
	Scenarios     []*scenario.HousingScenario
	Journal       *journal.Manager
	Notifier      *notifier.TelegramNotifier
	Recorder      recorder.Recorder
	Metrics       *metrics.Collector
	Ctx           context.Context
}

// Options carries the pipeline parameters derived from config.
type Options struct {
	Latitude      float64
	Longitude     float64
	HorizonDays   int
	Policy        model.ScoringPolicy
	MinWindow     time.Duration
	MaxCandidates int
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, opts Options, fetcher forecast.Fetcher, scenarios []*scenario.HousingScenario, jm *journal.Manager, tn *notifier.TelegramNotifier, rec recorder.Recorder, mc *metrics.Collector) *Scheduler {
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Fetcher:       fetcher,
		Latitude:      opts.Latitude,
		Longitude:     opts.Longitude,
		HorizonDays:   opts.HorizonDays,
		Policy:        opts.Policy,
		MinWindow:     opts.MinWindow,
		MaxCandidates: opts.MaxCandidates,
		Scenarios:     scenarios,
		Journal:       jm,
		Notifier:      tn,
		Recorder:      rec,
		Metrics:       mc,
		Ctx:           ctx,
	}
}

// RegisterAll registers the daily briefing and forecast refresh tasks.
func (s *Scheduler) RegisterAll(dailyCron, refreshCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily briefing immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

// dailyTask sends the full briefing: current conditions plus every
// scenario's advisory, whether or not the best window changed.
func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily advisory")

	if current, err := s.Fetcher.FetchCurrent(s.Latitude, s.Longitude); err != nil {
		log.Printf("[WARN] fetch current conditions: %v", err)
	} else {
		s.trySend(notifier.FormatCurrentConditions(current))
	}

	s.runPipeline(true)
}

// refreshTask re-runs the pipeline on a refreshed forecast and only speaks
// up when a scenario's best window moved since the last announcement.
func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running forecast refresh")
	s.runPipeline(false)
}

func (s *Scheduler) runPipeline(announceAll bool) {
	payload, err := s.Fetcher.FetchForecast(s.Latitude, s.Longitude, s.HorizonDays)
	if err != nil {
		log.Printf("[ERROR] fetch forecast: %v", err)
		s.Metrics.ObserveFetchFailure()
		s.recordFailure("fetch", err)
		if announceAll {
			s.trySend(fmt.Sprintf("❌ Forecast fetch failed: %v", err))
		}
		return
	}

	series, err := forecast.Normalize(payload, payload.Start(), s.HorizonDays)
	if err != nil {
		log.Printf("[ERROR] normalize forecast: %v", err)
		s.recordFailure("normalize", err)
		if announceAll {
			s.trySend(fmt.Sprintf("❌ Forecast unusable: %v", err))
		}
		return
	}

	outcomes := advisory.EvaluateScenarios(series, s.Scenarios, s.Policy, s.MinWindow, s.MaxCandidates)

	bestScore := 0.0
	qualified := false
	for _, out := range outcomes {
		if out.Err != nil {
			log.Printf("[ERROR] scenario %q: %v", out.Scenario.Name, out.Err)
			s.Metrics.ObserveRun(out.Scenario.Name, "error", 0)
			s.recordFailure("simulate", out.Err)
			if announceAll {
				s.trySend(fmt.Sprintf("⚠️ Scenario <b>%s</b> could not be simulated: %v", out.Scenario.Name, out.Err))
			}
			continue
		}

		report := out.Report
		s.Metrics.ObserveRun(out.Scenario.Name, "ok", len(report.Windows))
		if best, ok := report.Best(); ok {
			qualified = true
			if best.Score > bestScore {
				bestScore = best.Score
			}
			s.Metrics.SetBestScore(out.Scenario.Name, best.Score)
		}

		if err := s.Recorder.RecordRun(&recorder.RunRecord{
			ScenarioID:   out.Scenario.ID,
			ScenarioName: out.Scenario.Name,
			Resolution:   report.Series.Resolution.String(),
			Samples:      report.Series.Len(),
			Partial:      report.Series.Partial,
			GapCount:     len(report.Series.Gaps),
			Windows:      report.Windows,
		}); err != nil {
			log.Printf("[ERROR] record run: %v", err)
		}

		s.announce(report, announceAll)
	}

	s.Journal.RecordRun(bestScore, qualified)
}

func (s *Scheduler) announce(report *advisory.AdvisoryReport, announceAll bool) {
	best, ok := report.Best()
	if announceAll {
		s.trySend(notifier.FormatAdvisoryReport(report))
		if ok {
			s.Journal.MarkAnnounced(report.Scenario.Name, best.Start)
		}
		return
	}
	if !ok || !s.Journal.ShouldAnnounce(report.Scenario.Name, best.Start) {
		return
	}
	s.trySend("🔄 Forecast refreshed, the best window moved:\n\n" + notifier.FormatAdvisoryReport(report))
	s.Journal.MarkAnnounced(report.Scenario.Name, best.Start)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/advice":
		go s.dailyTask()
		return ""
	case "/status":
		state := s.Journal.GetState()
		return notifier.FormatJournalStatus(&state)
	case "/scenarios":
		var b strings.Builder
		b.WriteString("🏠 <b>Configured scenarios</b>\n\n")
		for _, sc := range s.Scenarios {
			b.WriteString(fmt.Sprintf("• %s: ventilation %.1f ach, moisture %.1f %%RH/h, thermal mass %.0fh, baseline %.0f%%RH\n",
				sc.Name, sc.VentilationRate, sc.MoistureGenerationRate, sc.ThermalMass, sc.BaselineIndoorHumidity))
		}
		return b.String()
	default:
		return "Commands:\n• /advice — run the advisory now\n• /status — advice journal\n• /scenarios — configured dwellings"
	}
}

func (s *Scheduler) recordFailure(stage string, err error) {
	if rerr := s.Recorder.RecordFailure(stage, err.Error()); rerr != nil {
		log.Printf("[ERROR] record failure: %v", rerr)
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}

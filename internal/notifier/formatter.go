package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"HumidSentinel/internal/advisory"
	"HumidSentinel/internal/forecast"
	"HumidSentinel/internal/journal"
)

// FormatAdvisoryReport renders one scenario's advisory into a Telegram message.
func FormatAdvisoryReport(report *advisory.AdvisoryReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🌦 <b>Drying advisory</b> | %s\n", report.Scenario.Name))
	b.WriteString(fmt.Sprintf("Forecast: %s, %d samples", report.Series.Resolution, report.Series.Len()))
	if report.Series.Partial {
		b.WriteString(fmt.Sprintf(" (partial, %d gaps)", len(report.Series.Gaps)))
	}
	b.WriteString("\n\n")

	if len(report.Windows) == 0 {
		b.WriteString("No suitable window in the forecast horizon. Keep the dehumidifier handy. 💧\n")
		return b.String()
	}

	best := report.Windows[0]
	b.WriteString(fmt.Sprintf("🏆 <b>Best window:</b> %s (%s)\n", formatWindowSpan(best.Start, best.End), humanize.Time(best.Start)))
	b.WriteString(fmt.Sprintf("   score %.2f — %s\n", best.Score, best.Rationale))

	if len(report.Windows) > 1 {
		b.WriteString("\nRunners-up:\n")
		for _, w := range report.Windows[1:] {
			b.WriteString(fmt.Sprintf("  • %s, score %.2f\n", formatWindowSpan(w.Start, w.End), w.Score))
		}
	}

	// Trajectory summary
	minH, maxH := report.States[0].IndoorHumidity, report.States[0].IndoorHumidity
	for _, st := range report.States {
		if st.IndoorHumidity < minH {
			minH = st.IndoorHumidity
		}
		if st.IndoorHumidity > maxH {
			maxH = st.IndoorHumidity
		}
	}
	b.WriteString(fmt.Sprintf("\nSimulated indoor humidity: %.0f–%.0f%%RH over the horizon\n", minH, maxH))

	return b.String()
}

// FormatCurrentConditions renders the latest observed outdoor conditions.
func FormatCurrentConditions(c *forecast.Current) string {
	return fmt.Sprintf("Outside now: %.0f%%RH, %.1f°C (%s)", c.Humidity, c.Temperature, humanize.Time(c.Time))
}

// FormatJournalStatus renders the advice journal for the /status command.
func FormatJournalStatus(state *journal.State) string {
	var b strings.Builder
	b.WriteString("📒 <b>Advice journal</b>\n\n")
	if state.LastRunAt.IsZero() {
		b.WriteString("No runs recorded yet.\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Last run: %s\n", humanize.Time(state.LastRunAt)))
	if state.DryRunStreak > 0 {
		b.WriteString(fmt.Sprintf("Runs without a qualifying window: %d\n", state.DryRunStreak))
	}
	if len(state.RecentBestScores) > 0 {
		sum := 0.0
		for _, s := range state.RecentBestScores {
			sum += s
		}
		b.WriteString(fmt.Sprintf("Average best score: %.2f over %d runs\n", sum/float64(len(state.RecentBestScores)), len(state.RecentBestScores)))
	}
	b.WriteString(fmt.Sprintf("Updated: %s\n", state.UpdatedAt.Format("2006-01-02 15:04")))
	return b.String()
}

func formatWindowSpan(start, end time.Time) string {
	if start.Truncate(24 * time.Hour).Equal(end.Truncate(24 * time.Hour)) {
		return fmt.Sprintf("%s %s–%s", start.Format("Mon 02 Jan"), start.Format("15:04"), end.Format("15:04"))
	}
	return fmt.Sprintf("%s – %s", start.Format("Mon 02 Jan 15:04"), end.Format("Mon 02 Jan 15:04"))
}

package optimizer

import (
	"fmt"
	"sort"
	"time"

	"HumidSentinel/internal/model"
)

// DaytimeBonus is added to a window's score when the policy prefers daytime
// and the window midpoint falls inside daytime hours.
const DaytimeBonus = 0.1

// Daytime hours, local to the series timestamps.
const (
	daytimeStartHour = 9
	daytimeEndHour   = 18
)

// RankWindows scans the simulated trajectory with a sliding window of
// length minWindow and returns up to maxCandidates windows ordered by
// (score desc, start asc). Overlapping windows are allowed; deduplication
// happens through ranking only. Windows that would span a hole in the
// timeline (a recorded gap) are skipped, so every returned window covers
// exactly minWindow of forecast. Every window is scored before truncation so
// the returned top-K is globally correct. A trajectory shorter than
// minWindow yields an empty result, not an error; so does a trajectory
// where no window scores above zero.
func RankWindows(states []model.SimulationState, policy model.ScoringPolicy, minWindow time.Duration, maxCandidates int) []model.CandidateWindow {
	if len(states) < 2 || maxCandidates <= 0 {
		return nil
	}

	step := states[1].Time.Sub(states[0].Time)
	if step <= 0 {
		return nil
	}
	steps := int(minWindow / step)
	if steps < 1 {
		steps = 1
	}
	if len(states) < steps {
		return nil
	}

	// Every window is scored; only positively scored ones qualify. A
	// trajectory that never dips below the target yields no candidates
	// rather than a list of useless zero-score windows. Windows straddling
	// a recorded gap would advertise a span with no forecast behind it, so
	// only contiguous stretches of the timeline are considered.
	contiguous := time.Duration(steps-1) * step
	windows := make([]model.CandidateWindow, 0, len(states)-steps+1)
	for start := 0; start+steps <= len(states); start++ {
		if states[start+steps-1].Time.Sub(states[start].Time) != contiguous {
			continue
		}
		w := scoreWindow(states[start:start+steps], policy, step)
		if w.Score > 0 {
			windows = append(windows, w)
		}
	}

	sort.Slice(windows, func(i, j int) bool {
		if windows[i].Score != windows[j].Score {
			return windows[i].Score > windows[j].Score
		}
		return windows[i].Start.Before(windows[j].Start)
	})

	if len(windows) > maxCandidates {
		windows = windows[:maxCandidates]
	}
	return windows
}

// scoreWindow computes a single window's score:
// fraction of steps below the humidity target, minus the confidence penalty
// weighted by the fraction of low-confidence steps, plus the optional
// daytime bonus.
func scoreWindow(window []model.SimulationState, policy model.ScoringPolicy, step time.Duration) model.CandidateWindow {
	below, lowConfidence := 0, 0
	for _, st := range window {
		if st.IndoorHumidity < policy.TargetHumidityBelow {
			below++
		}
		if st.LowConfidence {
			lowConfidence++
		}
	}

	n := float64(len(window))
	belowFrac := float64(below) / n
	lowFrac := float64(lowConfidence) / n
	score := belowFrac - policy.ConfidencePenalty*lowFrac

	start := window[0].Time
	end := window[len(window)-1].Time.Add(step)
	daytime := false
	// The bonus rewards placing a dry window in daylight; it must not lift
	// a window with no dry steps at all past qualification.
	if policy.PreferDaytime && below > 0 {
		mid := start.Add(end.Sub(start) / 2)
		if h := mid.Hour(); h >= daytimeStartHour && h < daytimeEndHour {
			score += DaytimeBonus
			daytime = true
		}
	}

	rationale := fmt.Sprintf("%d/%d steps below %.0f%%RH", below, len(window), policy.TargetHumidityBelow)
	if lowConfidence > 0 {
		rationale += fmt.Sprintf(", %d low-confidence", lowConfidence)
	}
	if daytime {
		rationale += ", daytime"
	}

	return model.CandidateWindow{
		Start:     start,
		End:       end,
		Score:     score,
		Rationale: rationale,
	}
}

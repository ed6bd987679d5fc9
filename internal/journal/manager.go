package journal

import (
	"log"
	"sync"
	"time"
)

// recentScoreWindow bounds how many best scores the journal remembers.
const recentScoreWindow = 14

// Manager guards the advice journal with a mutex and persists every change,
// so scheduled runs and Telegram commands can share it.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Manager{state: state, filePath: filePath}, nil
}

// GetState returns a copy of the current journal state. The map and slice
// are copied too, so the caller can iterate them without holding the lock.
func (m *Manager) GetState() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := *m.state
	out.NotifiedWindows = make(map[string]time.Time, len(m.state.NotifiedWindows))
	for name, start := range m.state.NotifiedWindows {
		out.NotifiedWindows[name] = start
	}
	out.RecentBestScores = append([]float64(nil), m.state.RecentBestScores...)
	return out
}

// ShouldAnnounce reports whether a window starting at windowStart for the
// named scenario has not been announced yet. Re-running the pipeline on a
// refreshed forecast usually reproduces the same best window; announcing it
// twice is noise.
func (m *Manager) ShouldAnnounce(scenarioName string, windowStart time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	last, ok := m.state.NotifiedWindows[scenarioName]
	return !ok || !last.Equal(windowStart)
}

// MarkAnnounced records that the window was sent to the user.
func (m *Manager) MarkAnnounced(scenarioName string, windowStart time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.NotifiedWindows[scenarioName] = windowStart
	m.save()
}

// RecordRun updates the journal after a pipeline run. bestScore is the top
// window score across scenarios; qualified is false when no window was
// found at all.
func (m *Manager) RecordRun(bestScore float64, qualified bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.LastRunAt = time.Now()
	if qualified {
		m.state.DryRunStreak = 0
		m.state.RecentBestScores = append(m.state.RecentBestScores, bestScore)
		if len(m.state.RecentBestScores) > recentScoreWindow {
			m.state.RecentBestScores = m.state.RecentBestScores[len(m.state.RecentBestScores)-recentScoreWindow:]
		}
	} else {
		m.state.DryRunStreak++
	}
	m.save()
}

func (m *Manager) save() {
	if err := SaveState(m.filePath, m.state); err != nil {
		log.Printf("[ERROR] save advice journal: %v", err)
	}
}

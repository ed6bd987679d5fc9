package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func TestManager_AnnounceDeduplication(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	if !m.ShouldAnnounce("flat", start) {
		t.Fatal("fresh journal must allow the first announcement")
	}
	m.MarkAnnounced("flat", start)
	if m.ShouldAnnounce("flat", start) {
		t.Error("identical window must not be announced twice")
	}
	if !m.ShouldAnnounce("flat", start.Add(2*time.Hour)) {
		t.Error("moved window must be announced")
	}
	if !m.ShouldAnnounce("cellar", start) {
		t.Error("other scenarios are tracked independently")
	}

	// State survives a reload.
	reloaded, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloaded.ShouldAnnounce("flat", start) {
		t.Error("announcement state must persist across restarts")
	}
}

func TestManager_GetStateIsDetached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m.MarkAnnounced("flat", start)
	m.RecordRun(0.85, true)

	state := m.GetState()
	state.NotifiedWindows["flat"] = start.Add(6 * time.Hour)
	state.RecentBestScores[0] = 0

	if m.ShouldAnnounce("flat", start) {
		t.Error("mutating the returned map must not affect the journal")
	}
	if got := m.GetState().RecentBestScores[0]; got != 0.85 {
		t.Errorf("recent score = %.2f after caller mutation, want 0.85", got)
	}
}

func TestManager_RecordRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.RecordRun(0, false)
	m.RecordRun(0, false)
	if got := m.GetState().DryRunStreak; got != 2 {
		t.Errorf("dry run streak = %d, want 2", got)
	}

	m.RecordRun(0.85, true)
	state := m.GetState()
	if state.DryRunStreak != 0 {
		t.Errorf("qualifying run must reset the streak, got %d", state.DryRunStreak)
	}
	if len(state.RecentBestScores) != 1 || state.RecentBestScores[0] != 0.85 {
		t.Errorf("recent scores = %v, want [0.85]", state.RecentBestScores)
	}

	// The score window stays bounded.
	for i := 0; i < 30; i++ {
		m.RecordRun(0.5, true)
	}
	if got := len(m.GetState().RecentBestScores); got != recentScoreWindow {
		t.Errorf("recent scores length = %d, want %d", got, recentScoreWindow)
	}
}

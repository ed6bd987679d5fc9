package journal

import (
	"encoding/json"
	"os"
	"time"
)

// State is the persisted advice journal: when the advisor last ran, which
// window starts have already been announced per scenario, and the recent
// best scores used for the streak line in status messages.
type State struct {
	LastRunAt        time.Time            `json:"last_run_at"`
	NotifiedWindows  map[string]time.Time `json:"notified_windows"` // scenario name -> announced window start
	RecentBestScores []float64            `json:"recent_best_scores"`
	DryRunStreak     int                  `json:"dry_run_streak"` // consecutive runs with no qualifying window
	UpdatedAt        time.Time            `json:"updated_at"`
}

// LoadState reads the journal from a JSON file. Returns a zero state if the
// file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{NotifiedWindows: map[string]time.Time{}}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.NotifiedWindows == nil {
		state.NotifiedWindows = map[string]time.Time{}
	}
	return &state, nil
}

// SaveState writes the journal to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}

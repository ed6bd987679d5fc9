package recorder

import "HumidSentinel/internal/model"

// RunRecord holds everything worth persisting about one scenario run.
type RunRecord struct {
	ScenarioID   string
	ScenarioName string
	Resolution   string
	Samples      int
	Partial      bool
	GapCount     int
	Windows      []model.CandidateWindow
}

// Recorder persists historical advisory runs for later analysis.
type Recorder interface {
	RecordRun(run *RunRecord) error
	RecordFailure(stage, message string) error
	Close() error
}

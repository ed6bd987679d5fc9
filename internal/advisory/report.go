package advisory

import (
	"fmt"
	"time"

	"HumidSentinel/internal/model"
	"HumidSentinel/internal/scenario"
)

// AdvisoryReport bundles everything a display or API collaborator needs for
// one scenario: the scenario itself, the normalized forecast, the simulated
// trajectory, and the ranked candidate windows. It is built once per
// request, never mutated, and safe to share across goroutines.
type AdvisoryReport struct {
	Scenario    *scenario.HousingScenario
	Series      *model.ForecastSeries
	States      []model.SimulationState
	Windows     []model.CandidateWindow
	GeneratedAt time.Time
}

// Best returns the top-ranked window, or false when no window qualified.
func (r *AdvisoryReport) Best() (model.CandidateWindow, bool) {
	if len(r.Windows) == 0 {
		return model.CandidateWindow{}, false
	}
	return r.Windows[0], true
}

// Build assembles the advisory report. It performs structural validation
// only: a state count that does not match the forecast series is a bug in
// the pipeline, surfaced as *model.ContractViolationError.
func Build(sc *scenario.HousingScenario, series *model.ForecastSeries, states []model.SimulationState, windows []model.CandidateWindow) (*AdvisoryReport, error) {
	if len(states) != series.Len() {
		return nil, &model.ContractViolationError{
			Invariant: fmt.Sprintf("simulation states (%d) must align 1:1 with forecast series (%d)",
				len(states), series.Len()),
		}
	}
	return &AdvisoryReport{
		Scenario:    sc,
		Series:      series,
		States:      states,
		Windows:     windows,
		GeneratedAt: time.Now(),
	}, nil
}

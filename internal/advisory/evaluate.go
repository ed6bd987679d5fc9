package advisory

import (
	"sync"
	"time"

	"HumidSentinel/internal/engine"
	"HumidSentinel/internal/model"
	"HumidSentinel/internal/optimizer"
	"HumidSentinel/internal/scenario"
)

// Outcome pairs a scenario's report with the error that prevented it, so a
// divergent scenario does not hide the others.
type Outcome struct {
	Scenario *scenario.HousingScenario
	Report   *AdvisoryReport
	Err      error
}

// EvaluateScenarios runs the simulate/rank/build pipeline for every
// scenario against the same forecast series, one goroutine per scenario.
// The engine and the scenario response function are pure, so the series can
// be shared without copying or locking. Outcomes are returned in the input
// scenario order.
func EvaluateScenarios(series *model.ForecastSeries, scenarios []*scenario.HousingScenario, policy model.ScoringPolicy, minWindow time.Duration, maxCandidates int) []Outcome {
	outcomes := make([]Outcome, len(scenarios))
	var wg sync.WaitGroup

	for i, sc := range scenarios {
		wg.Add(1)
		go func(i int, sc *scenario.HousingScenario) {
			defer wg.Done()
			outcomes[i] = evaluate(series, sc, policy, minWindow, maxCandidates)
		}(i, sc)
	}
	wg.Wait()
	return outcomes
}

func evaluate(series *model.ForecastSeries, sc *scenario.HousingScenario, policy model.ScoringPolicy, minWindow time.Duration, maxCandidates int) Outcome {
	states, err := engine.Simulate(series, sc, series.Resolution.Step())
	if err != nil {
		return Outcome{Scenario: sc, Err: err}
	}
	windows := optimizer.RankWindows(states, policy, minWindow, maxCandidates)
	report, err := Build(sc, series, states, windows)
	if err != nil {
		return Outcome{Scenario: sc, Err: err}
	}
	return Outcome{Scenario: sc, Report: report}
}

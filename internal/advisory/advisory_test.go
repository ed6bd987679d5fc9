package advisory

import (
	"errors"
	"testing"
	"time"

	"HumidSentinel/internal/model"
	"HumidSentinel/internal/scenario"
)

var testStart = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func constantSeries(hours int, humidity, temp float64) *model.ForecastSeries {
	s := &model.ForecastSeries{
		Resolution: model.ResolutionHourly,
		Start:      testStart,
		End:        testStart.Add(time.Duration(hours) * time.Hour),
	}
	for i := 0; i < hours; i++ {
		ts := testStart.Add(time.Duration(i) * time.Hour)
		s.Humidity = append(s.Humidity, model.TimePoint{Time: ts, Value: humidity})
		s.Temperature = append(s.Temperature, model.TimePoint{Time: ts, Value: temp})
	}
	return s
}

func TestBuild_LengthMismatch(t *testing.T) {
	sc, err := scenario.New("flat", 0.5, 1.2, 12, 55)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	series := constantSeries(24, 70, 10)
	states := make([]model.SimulationState, 10)

	_, err = Build(sc, series, states, nil)
	var violation *model.ContractViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected ContractViolationError, got %v", err)
	}
}

func TestEvaluateScenarios_OrderAndIsolation(t *testing.T) {
	series := constantSeries(48, 60, 12)

	flat, err := scenario.New("flat", 0.5, 1.2, 12, 55)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Diverges: clamps at 100 on nearly every step.
	swamp, err := scenario.New("swamp", 0, 50, 12, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cellar, err := scenario.New("cellar", 0, 0.2, 48, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	policy := model.ScoringPolicy{TargetHumidityBelow: 70, ConfidencePenalty: 0.2}
	outcomes := EvaluateScenarios(series, []*scenario.HousingScenario{flat, swamp, cellar}, policy, 4*time.Hour, 5)

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Scenario != flat || outcomes[1].Scenario != swamp || outcomes[2].Scenario != cellar {
		t.Fatal("outcomes must preserve input scenario order")
	}

	var divergence *model.DivergenceError
	if !errors.As(outcomes[1].Err, &divergence) {
		t.Fatalf("swamp scenario: expected DivergenceError, got %v", outcomes[1].Err)
	}
	for _, i := range []int{0, 2} {
		out := outcomes[i]
		if out.Err != nil {
			t.Fatalf("scenario %q: unexpected error: %v", out.Scenario.Name, out.Err)
		}
		if out.Report == nil {
			t.Fatalf("scenario %q: missing report", out.Scenario.Name)
		}
		if len(out.Report.States) != series.Len() {
			t.Errorf("scenario %q: states (%d) not aligned with series (%d)",
				out.Scenario.Name, len(out.Report.States), series.Len())
		}
	}
}

func TestEvaluateScenarios_SameScenarioIsReproducible(t *testing.T) {
	series := constantSeries(24, 70, 12)
	sc, err := scenario.New("flat", 0.5, 0.5, 12, 55)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	policy := model.ScoringPolicy{TargetHumidityBelow: 70}
	a := EvaluateScenarios(series, []*scenario.HousingScenario{sc}, policy, 4*time.Hour, 5)
	b := EvaluateScenarios(series, []*scenario.HousingScenario{sc}, policy, 4*time.Hour, 5)

	if a[0].Err != nil || b[0].Err != nil {
		t.Fatalf("unexpected errors: %v, %v", a[0].Err, b[0].Err)
	}
	if len(a[0].Report.Windows) != len(b[0].Report.Windows) {
		t.Fatalf("window counts differ: %d vs %d", len(a[0].Report.Windows), len(b[0].Report.Windows))
	}
	for i := range a[0].Report.Windows {
		if a[0].Report.Windows[i] != b[0].Report.Windows[i] {
			t.Fatalf("window %d differs between identical runs", i)
		}
	}
}

package engine

import (
	"fmt"
	"time"

	"HumidSentinel/internal/model"
	"HumidSentinel/internal/scenario"
)

// DivergenceThreshold is the fraction of clamped steps above which a run is
// treated as a scenario/forecast mismatch rather than a valid trajectory.
const DivergenceThreshold = 0.25

// Simulate advances the indoor state step-by-step across the forecast
// series using bounded forward Euler integration. The step size dt should
// equal the series resolution; there is no sub-stepping, so the output is
// aligned 1:1 with the input series. Indoor humidity is clamped to
// [0, 100]; temperature is unclamped. Two calls with identical inputs
// produce identical output: there is no randomness and no wall-clock
// dependence.
//
// If clamping is required on more than DivergenceThreshold of the steps,
// Simulate returns *model.DivergenceError instead of a silently saturated
// trajectory.
func Simulate(series *model.ForecastSeries, sc *scenario.HousingScenario, dt time.Duration) ([]model.SimulationState, error) {
	if series == nil || series.Len() == 0 {
		return nil, fmt.Errorf("simulate: empty forecast series")
	}
	if len(series.Temperature) != len(series.Humidity) {
		return nil, &model.ContractViolationError{
			Invariant: fmt.Sprintf("forecast series misaligned: %d humidity vs %d temperature points",
				len(series.Humidity), len(series.Temperature)),
		}
	}
	if dt <= 0 {
		dt = series.Resolution.Step()
	}

	states := make([]model.SimulationState, 0, series.Len())
	indoorHumidity := sc.BaselineIndoorHumidity
	indoorTemp := series.Temperature[0].Value
	clamped := 0

	for i := 0; i < series.Len(); i++ {
		hp := series.Humidity[i]
		tp := series.Temperature[i]

		dH, dT := sc.Response(indoorHumidity, indoorTemp, hp.Value, tp.Value, dt)
		indoorHumidity += dH
		indoorTemp += dT

		if indoorHumidity < 0 {
			indoorHumidity = 0
			clamped++
		} else if indoorHumidity > 100 {
			indoorHumidity = 100
			clamped++
		}

		states = append(states, model.SimulationState{
			Time:            hp.Time,
			IndoorHumidity:  indoorHumidity,
			IndoorTemp:      indoorTemp,
			OutdoorHumidity: hp.Value,
			OutdoorTemp:     tp.Value,
			LowConfidence:   hp.Interpolated || tp.Interpolated,
		})
	}

	if float64(clamped) > DivergenceThreshold*float64(len(states)) {
		return nil, &model.DivergenceError{Clamped: clamped, Steps: len(states)}
	}
	return states, nil
}

package model

import "time"

// SimulationState is one step of the simulated indoor trajectory, aligned
// 1:1 with the forecast series that drove it. LowConfidence is set when the
// driving forecast sample was interpolated rather than observed.
type SimulationState struct {
	Time            time.Time
	IndoorHumidity  float64 // %RH, clamped to [0, 100]
	IndoorTemp      float64 // °C, unclamped
	OutdoorHumidity float64
	OutdoorTemp     float64
	LowConfidence   bool
}

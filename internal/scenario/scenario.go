package scenario

import (
	"time"

	"github.com/google/uuid"

	"HumidSentinel/internal/model"
)

// HousingScenario describes a dwelling's humidity/temperature response
// characteristics. It is validated on construction and never mutated
// afterwards, so concurrent simulations may share one value freely. The ID
// identifies the scenario for caching and recording.
type HousingScenario struct {
	ID   string
	Name string

	// VentilationRate is the air exchange coefficient in air changes per
	// hour. Zero degenerates to a closed-house model driven solely by
	// moisture generation.
	VentilationRate float64

	// MoistureGenerationRate is the indoor moisture load expressed as the
	// %RH it adds per hour in still air (occupants, cooking, drying).
	MoistureGenerationRate float64

	// ThermalMass is the indoor temperature response time constant in
	// hours. Larger means slower tracking of outdoor temperature.
	ThermalMass float64

	// BaselineIndoorHumidity is the indoor %RH the simulation starts from.
	BaselineIndoorHumidity float64
}

// New validates the coefficients and returns an immutable scenario.
func New(name string, ventilationRate, moistureGenerationRate, thermalMass, baselineIndoorHumidity float64) (*HousingScenario, error) {
	if name == "" {
		return nil, &model.InvalidScenarioError{Field: "name", Reason: "must not be empty"}
	}
	if ventilationRate < 0 {
		return nil, &model.InvalidScenarioError{Field: "ventilation_rate", Reason: "must not be negative"}
	}
	if moistureGenerationRate < 0 {
		return nil, &model.InvalidScenarioError{Field: "moisture_generation_rate", Reason: "must not be negative"}
	}
	if thermalMass <= 0 {
		return nil, &model.InvalidScenarioError{Field: "thermal_mass", Reason: "must be positive"}
	}
	if baselineIndoorHumidity < 0 || baselineIndoorHumidity > 100 {
		return nil, &model.InvalidScenarioError{Field: "baseline_indoor_humidity", Reason: "must be in [0, 100]"}
	}
	return &HousingScenario{
		ID:                     uuid.NewString(),
		Name:                   name,
		VentilationRate:        ventilationRate,
		MoistureGenerationRate: moistureGenerationRate,
		ThermalMass:            thermalMass,
		BaselineIndoorHumidity: baselineIndoorHumidity,
	}, nil
}

// Response returns the first-order indoor deltas for one step of length dt
// at the given indoor/outdoor operating point. It is a pure function of its
// arguments and the scenario's fixed coefficients, which is what makes
// simulation runs reproducible and parallelizable across scenarios.
func (s *HousingScenario) Response(indoorHumidity, indoorTemp, outdoorHumidity, outdoorTemp float64, dt time.Duration) (dHumidity, dTemp float64) {
	hours := dt.Hours()
	dHumidity = (s.VentilationRate*(outdoorHumidity-indoorHumidity) + s.MoistureGenerationRate) * hours
	dTemp = (outdoorTemp - indoorTemp) / s.ThermalMass * hours
	return dHumidity, dTemp
}

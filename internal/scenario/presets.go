package scenario

import "fmt"

// preset holds the coefficients for a named housing preset.
type preset struct {
	ventilationRate        float64
	moistureGenerationRate float64
	thermalMass            float64
	baselineIndoorHumidity float64
}

// presets maps preset names to coefficients. Values are calibrated for a
// single occupant: the one-bed flat assumes daily showers and weekday
// cooking, the family house roughly doubles the moisture load with better
// ventilation, and the closed cellar has no forced air exchange at all.
var presets = map[string]preset{
	"one-bed-flat": {
		ventilationRate:        0.5,
		moistureGenerationRate: 1.2,
		thermalMass:            12,
		baselineIndoorHumidity: 55,
	},
	"family-house": {
		ventilationRate:        0.8,
		moistureGenerationRate: 2.5,
		thermalMass:            24,
		baselineIndoorHumidity: 50,
	},
	"closed-cellar": {
		ventilationRate:        0,
		moistureGenerationRate: 0.3,
		thermalMass:            48,
		baselineIndoorHumidity: 65,
	},
}

// FromPreset builds a scenario from a named preset.
func FromPreset(name string) (*HousingScenario, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario preset %q (known: %v)", name, PresetNames())
	}
	return New(name, p.ventilationRate, p.moistureGenerationRate, p.thermalMass, p.baselineIndoorHumidity)
}

// PresetNames lists the known preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}

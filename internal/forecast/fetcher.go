package forecast

import (
	"math"
	"time"
)

// Sample is a single raw sample from a provider payload. Humidity or
// Temperature are NaN when the provider returned null for that slot.
type Sample struct {
	Time        time.Time
	Humidity    float64 // %RH
	Temperature float64 // °C
}

// Missing reports whether the humidity value is absent.
func (s Sample) Missing() bool { return math.IsNaN(s.Humidity) }

// Payload is a raw provider forecast before normalization. Hourly and Daily
// may each be empty, but at least one must carry samples.
type Payload struct {
	Latitude  float64
	Longitude float64
	Timezone  string
	Hourly    []Sample
	Daily     []Sample
}

// Start returns the earliest sample timestamp in the payload. Providers
// return whole calendar days, so anchoring the normalization grid here
// instead of at the wall clock avoids a synthetic trailing gap on every
// afternoon run.
func (p *Payload) Start() time.Time {
	var start time.Time
	for _, set := range [][]Sample{p.Hourly, p.Daily} {
		for _, s := range set {
			if start.IsZero() || s.Time.Before(start) {
				start = s.Time
			}
		}
	}
	return start
}

// Current holds the most recent observed outdoor conditions.
type Current struct {
	Time        time.Time
	Humidity    float64
	Temperature float64
}

// Fetcher defines the interface for retrieving raw forecast payloads.
type Fetcher interface {
	FetchForecast(lat, lon float64, days int) (*Payload, error)
	FetchCurrent(lat, lon float64) (*Current, error)
	Name() string
}

package model

import "time"

// Resolution is the uniform sampling cadence of a forecast series.
type Resolution time.Duration

const (
	ResolutionHourly = Resolution(time.Hour)
	ResolutionDaily  = Resolution(24 * time.Hour)
)

// Step returns the cadence as a duration.
func (r Resolution) Step() time.Duration { return time.Duration(r) }

func (r Resolution) String() string {
	switch r {
	case ResolutionHourly:
		return "hourly"
	case ResolutionDaily:
		return "daily"
	default:
		return time.Duration(r).String()
	}
}

// TimePoint is a single sample in a forecast series. Interpolated marks
// values synthesized to fill a short gap; it is never unset once computed.
type TimePoint struct {
	Time         time.Time
	Value        float64
	Interpolated bool
}

// Gap records a run of missing samples that was too long to interpolate.
type Gap struct {
	From  time.Time
	To    time.Time // exclusive
	Steps int
}

// ForecastSeries holds normalized outdoor humidity and temperature samples
// on a single uniform cadence. Humidity and Temperature are aligned 1:1 and
// strictly increasing in time with no duplicate timestamps. Partial is set
// when the coverage interval is shorter than the requested horizon or when
// a gap was too long to fill.
type ForecastSeries struct {
	Humidity    []TimePoint
	Temperature []TimePoint
	Resolution  Resolution
	Start       time.Time // coverage [Start, End)
	End         time.Time
	Partial     bool
	Gaps        []Gap
}

// Len returns the number of samples in the series.
func (s *ForecastSeries) Len() int { return len(s.Humidity) }

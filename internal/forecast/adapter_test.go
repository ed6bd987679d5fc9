package forecast

import (
	"errors"
	"math"
	"testing"
	"time"

	"HumidSentinel/internal/model"
)

var testStart = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

// hourlyPayload builds a one-day hourly payload with the given humidity
// values; NaN marks a missing sample, which is dropped from the payload
// entirely to mimic a provider gap.
func hourlyPayload(values []float64) *Payload {
	p := &Payload{Latitude: 51.5, Longitude: -0.12}
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		p.Hourly = append(p.Hourly, Sample{
			Time:        testStart.Add(time.Duration(i) * time.Hour),
			Humidity:    v,
			Temperature: 12.0,
		})
	}
	return p
}

func constantValues(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestNormalize_StrictlyOrdered(t *testing.T) {
	p := hourlyPayload(constantValues(24, 70))
	// Duplicate timestamp in the payload must not produce a duplicate point.
	p.Hourly = append(p.Hourly, Sample{Time: testStart.Add(3 * time.Hour), Humidity: 99, Temperature: 12})

	series, err := Normalize(p, testStart, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Len() != 24 {
		t.Fatalf("expected 24 points, got %d", series.Len())
	}
	for i := 1; i < series.Len(); i++ {
		if !series.Humidity[i].Time.After(series.Humidity[i-1].Time) {
			t.Errorf("point %d not strictly after point %d", i, i-1)
		}
	}
	if series.Partial {
		t.Error("complete payload should not be marked partial")
	}
}

func TestNormalize_ShortGapInterpolated(t *testing.T) {
	values := constantValues(24, 70)
	values[9] = 60
	values[10] = math.NaN()
	values[11] = math.NaN()
	values[12] = 90

	series, err := Normalize(hourlyPayload(values), testStart, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Len() != 24 {
		t.Fatalf("expected gap to be filled, got %d points", series.Len())
	}
	if series.Partial {
		t.Error("2-step gap should not mark the series partial")
	}

	interpolated := 0
	for _, tp := range series.Humidity {
		if tp.Interpolated {
			interpolated++
		}
	}
	if interpolated != 2 {
		t.Fatalf("expected exactly 2 interpolated points, got %d", interpolated)
	}

	// Linear between 60 and 90: 70 and 80.
	if got := series.Humidity[10].Value; math.Abs(got-70) > 1e-9 {
		t.Errorf("first interpolated value = %.4f, want 70", got)
	}
	if got := series.Humidity[11].Value; math.Abs(got-80) > 1e-9 {
		t.Errorf("second interpolated value = %.4f, want 80", got)
	}
	if !series.Humidity[10].Interpolated || !series.Humidity[11].Interpolated {
		t.Error("gap points must carry the interpolated flag")
	}
	if series.Humidity[9].Interpolated || series.Humidity[12].Interpolated {
		t.Error("observed neighbors must not carry the interpolated flag")
	}
}

func TestNormalize_LongGapMarkedPartial(t *testing.T) {
	values := constantValues(24, 70)
	for i := 8; i < 13; i++ { // 5-step gap
		values[i] = math.NaN()
	}

	series, err := Normalize(hourlyPayload(values), testStart, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !series.Partial {
		t.Error("5-step gap must mark the series partial")
	}
	if series.Len() != 19 {
		t.Errorf("expected 19 points (gap not filled), got %d", series.Len())
	}
	for _, tp := range series.Humidity {
		if tp.Interpolated {
			t.Errorf("no interpolation expected for a long gap, point at %v flagged", tp.Time)
		}
	}
	if len(series.Gaps) != 1 {
		t.Fatalf("expected 1 recorded gap, got %d", len(series.Gaps))
	}
	gap := series.Gaps[0]
	if gap.Steps != 5 {
		t.Errorf("gap steps = %d, want 5", gap.Steps)
	}
	if !gap.From.Equal(testStart.Add(8 * time.Hour)) {
		t.Errorf("gap from = %v, want %v", gap.From, testStart.Add(8*time.Hour))
	}
}

func TestNormalize_InsufficientData(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = math.NaN()
	}
	values[0] = 70

	_, err := Normalize(hourlyPayload(values), testStart, 1)
	var insufficient *model.InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if insufficient.Samples != 1 {
		t.Errorf("samples = %d, want 1", insufficient.Samples)
	}

	if _, err := Normalize(&Payload{}, testStart, 1); !errors.As(err, &insufficient) {
		t.Fatalf("empty payload: expected InsufficientDataError, got %v", err)
	}
}

func TestNormalize_HorizonBounds(t *testing.T) {
	p := hourlyPayload(constantValues(24, 70))
	for _, days := range []int{0, -1, 17} {
		if _, err := Normalize(p, testStart, days); err == nil {
			t.Errorf("horizon %d: expected error", days)
		}
	}
}

func TestNormalize_PrefersHourlyCadence(t *testing.T) {
	p := hourlyPayload(constantValues(24, 70))
	p.Daily = []Sample{
		{Time: testStart, Humidity: 75, Temperature: 10},
		{Time: testStart.Add(24 * time.Hour), Humidity: 72, Temperature: 11},
	}

	series, err := Normalize(p, testStart, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Resolution != model.ResolutionHourly {
		t.Errorf("resolution = %v, want hourly", series.Resolution)
	}
}

func TestNormalize_DailyFallback(t *testing.T) {
	p := &Payload{}
	for i := 0; i < 7; i++ {
		p.Daily = append(p.Daily, Sample{
			Time:        testStart.Add(time.Duration(i) * 24 * time.Hour),
			Humidity:    65 + float64(i),
			Temperature: 10,
		})
	}

	series, err := Normalize(p, testStart, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Resolution != model.ResolutionDaily {
		t.Errorf("resolution = %v, want daily", series.Resolution)
	}
	if series.Len() != 7 {
		t.Errorf("expected 7 points, got %d", series.Len())
	}
	if series.Partial {
		t.Error("full-coverage daily series should not be partial")
	}
}

func TestNormalize_ShortCoverageMarkedPartial(t *testing.T) {
	// 12 hours of samples against a 1-day horizon: trailing edge gap.
	series, err := Normalize(hourlyPayload(constantValues(12, 70)), testStart, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !series.Partial {
		t.Error("coverage shorter than the horizon must mark the series partial")
	}
	if series.Len() != 12 {
		t.Errorf("expected 12 points, got %d", series.Len())
	}
}

func TestPayloadStart(t *testing.T) {
	p := hourlyPayload(constantValues(24, 70))
	if !p.Start().Equal(testStart) {
		t.Errorf("start = %v, want %v", p.Start(), testStart)
	}
	p.Daily = []Sample{{Time: testStart.Add(-24 * time.Hour), Humidity: 70, Temperature: 10}}
	if !p.Start().Equal(testStart.Add(-24 * time.Hour)) {
		t.Errorf("start must pick the earliest sample across cadences, got %v", p.Start())
	}
	if !(&Payload{}).Start().IsZero() {
		t.Error("empty payload must have a zero start")
	}
}

func TestNormalize_AnchoredAtPayloadStart(t *testing.T) {
	// Provider days start at midnight regardless of when the advisor runs:
	// a full day of samples anchored at its own start must not be partial.
	p := &Payload{}
	base := testStart.Add(13 * time.Hour)
	for i := 0; i < 24; i++ {
		p.Hourly = append(p.Hourly, Sample{
			Time:        base.Add(time.Duration(i) * time.Hour),
			Humidity:    70,
			Temperature: 12,
		})
	}

	series, err := Normalize(p, p.Start(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Partial {
		t.Error("full coverage anchored at the payload start must not be partial")
	}
	if series.Len() != 24 {
		t.Errorf("expected 24 points, got %d", series.Len())
	}
	if !series.Start.Equal(base) {
		t.Errorf("series start = %v, want %v", series.Start, base)
	}
}

func TestNormalize_MissingTemperatureFilled(t *testing.T) {
	p := hourlyPayload(constantValues(24, 70))
	for i := range p.Hourly {
		p.Hourly[i].Temperature = math.NaN()
	}
	p.Hourly[0].Temperature = 10
	p.Hourly[23].Temperature = 10

	series, err := Normalize(p, testStart, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Temperature) != series.Len() {
		t.Fatalf("temperature must align 1:1 with humidity")
	}
	for i, tp := range series.Temperature {
		if math.IsNaN(tp.Value) {
			t.Fatalf("temperature point %d is NaN", i)
		}
	}
	if !series.Temperature[5].Interpolated {
		t.Error("derived temperature points must be flagged interpolated")
	}
}

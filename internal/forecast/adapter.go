package forecast

import (
	"fmt"
	"math"
	"time"

	"HumidSentinel/internal/model"
)

const (
	// MaxHorizonDays is the provider's forecast horizon cap.
	MaxHorizonDays = 16

	// MaxInterpolatedRun is the longest run of consecutive missing samples
	// that is filled by linear interpolation. Longer runs are recorded as
	// gaps and the series is marked partial.
	MaxInterpolatedRun = 2

	// DefaultOutdoorTemp is used when the payload carries no temperature
	// samples at all.
	DefaultOutdoorTemp = 15.0
)

// Normalize re-samples a raw provider payload onto a single uniform cadence
// covering [start, start+horizon). It picks the finer cadence present in the
// payload, fills short gaps by linear interpolation (flagging the points),
// records longer gaps, and returns the gap-aware series. A payload with
// fewer than 2 valid samples after normalization yields
// *model.InsufficientDataError.
func Normalize(p *Payload, start time.Time, horizonDays int) (*model.ForecastSeries, error) {
	if horizonDays < 1 || horizonDays > MaxHorizonDays {
		return nil, fmt.Errorf("requested horizon must be in [1, %d] days, got %d", MaxHorizonDays, horizonDays)
	}
	if p == nil || (len(p.Hourly) == 0 && len(p.Daily) == 0) {
		return nil, &model.InsufficientDataError{Samples: 0}
	}

	source := p.Hourly
	res := model.ResolutionHourly
	if len(source) == 0 {
		source = p.Daily
		res = model.ResolutionDaily
	}
	step := res.Step()

	gridStart := start.UTC().Truncate(step)
	slots := horizonDays * int(24*time.Hour/step)
	horizon := time.Duration(horizonDays) * 24 * time.Hour

	// Map payload samples onto grid slots. Duplicate timestamps keep the
	// first occurrence so output timestamps stay strictly increasing.
	bySlot := make(map[int64]Sample, len(source))
	for _, s := range source {
		key := s.Time.UTC().Truncate(step).Unix()
		if _, ok := bySlot[key]; !ok {
			bySlot[key] = s
		}
	}

	present := make([]bool, slots)
	hum := make([]float64, slots)
	temp := make([]float64, slots)
	for i := range temp {
		hum[i] = math.NaN()
		temp[i] = math.NaN()
	}
	for i := 0; i < slots; i++ {
		t := gridStart.Add(time.Duration(i) * step)
		s, ok := bySlot[t.Unix()]
		if !ok || s.Missing() {
			continue
		}
		present[i] = true
		hum[i] = s.Humidity
		temp[i] = s.Temperature
	}

	series := &model.ForecastSeries{
		Resolution: res,
		Start:      gridStart,
		End:        gridStart,
	}

	interpolated := make([]bool, slots)
	i := 0
	for i < slots {
		if present[i] {
			i++
			continue
		}
		runStart := i
		for i < slots && !present[i] {
			i++
		}
		runLen := i - runStart
		hasLeft := runStart > 0
		hasRight := i < slots

		if runLen <= MaxInterpolatedRun && hasLeft && hasRight {
			lo, hi := hum[runStart-1], hum[i]
			for j := 0; j < runLen; j++ {
				frac := float64(j+1) / float64(runLen+1)
				hum[runStart+j] = lo + (hi-lo)*frac
				present[runStart+j] = true
				interpolated[runStart+j] = true
			}
			continue
		}

		series.Gaps = append(series.Gaps, model.Gap{
			From:  gridStart.Add(time.Duration(runStart) * step),
			To:    gridStart.Add(time.Duration(i) * step),
			Steps: runLen,
		})
		series.Partial = true
	}

	fillTemperature(present, temp, slots)

	for i := 0; i < slots; i++ {
		if !present[i] {
			continue
		}
		t := gridStart.Add(time.Duration(i) * step)
		series.Humidity = append(series.Humidity, model.TimePoint{
			Time:         t,
			Value:        hum[i],
			Interpolated: interpolated[i],
		})
		series.Temperature = append(series.Temperature, model.TimePoint{
			Time:         t,
			Value:        temp[i],
			Interpolated: interpolated[i] || math.IsNaN(tempObserved(bySlot, t, step)),
		})
		series.End = t.Add(step)
	}

	if len(series.Humidity) < 2 {
		return nil, &model.InsufficientDataError{Samples: len(series.Humidity)}
	}
	if series.End.Sub(series.Start) < horizon {
		series.Partial = true
	}
	return series, nil
}

// tempObserved returns the temperature the payload actually carried for the
// slot, NaN when it carried none.
func tempObserved(bySlot map[int64]Sample, t time.Time, step time.Duration) float64 {
	s, ok := bySlot[t.UTC().Truncate(step).Unix()]
	if !ok {
		return math.NaN()
	}
	return s.Temperature
}

// fillTemperature replaces NaN temperatures on included slots by linear
// interpolation between the nearest observed temperatures, falling back to
// the nearest single neighbor at the edges and to DefaultOutdoorTemp when
// the payload carried no temperatures at all.
func fillTemperature(present []bool, temp []float64, slots int) {
	prev := -1
	for i := 0; i < slots; i++ {
		if !present[i] || math.IsNaN(temp[i]) {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			lo, hi := temp[prev], temp[i]
			for j := prev + 1; j < i; j++ {
				if present[j] {
					temp[j] = lo + (hi-lo)*float64(j-prev)/float64(i-prev)
				}
			}
		}
		if prev < 0 {
			for j := 0; j < i; j++ {
				if present[j] {
					temp[j] = temp[i]
				}
			}
		}
		prev = i
	}
	for i := 0; i < slots; i++ {
		if !present[i] {
			continue
		}
		if math.IsNaN(temp[i]) {
			if prev >= 0 {
				temp[i] = temp[prev]
			} else {
				temp[i] = DefaultOutdoorTemp
			}
		}
	}
}

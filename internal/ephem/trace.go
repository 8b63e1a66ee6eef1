package ephem

import (
	"errors"
	"math"
	"time"

	"github.com/litescript/ls-skylight/internal/astro"
)

// AltitudeSample is a body's altitude at one instant.
type AltitudeSample struct {
	Time     time.Time `json:"time"`
	Altitude float64   `json:"altitude_deg"`
	Azimuth  float64   `json:"azimuth_deg"`
}

// AltitudeTrace holds altitude samples for a body over a time window.
type AltitudeTrace struct {
	Body        Body             `json:"-"`
	Location    astro.GeoPoint   `json:"location"`
	Samples     []AltitudeSample `json:"samples"`
	WindowStart time.Time        `json:"window_start"`
	WindowEnd   time.Time        `json:"window_end"`
}

// DefaultTraceWindow is the half-width of an altitude trace.
const DefaultTraceWindow = 12 * time.Hour

// DefaultTraceStep is the time between trace samples.
const DefaultTraceStep = 30 * time.Minute

// ComputeAltitudeTrace samples body's altitude from p over center±window.
// Non-positive window or step use the defaults.
func ComputeAltitudeTrace(p Provider, body Body, center time.Time, loc astro.GeoPoint, window, step time.Duration) *AltitudeTrace {
	if window <= 0 {
		window = DefaultTraceWindow
	}
	if step <= 0 {
		step = DefaultTraceStep
	}

	loc = loc.Normalized()
	start := center.Add(-window)
	end := center.Add(window)

	trace := &AltitudeTrace{
		Body:        body,
		Location:    loc,
		WindowStart: start,
		WindowEnd:   end,
		Samples:     make([]AltitudeSample, 0, int(2*window/step)+1),
	}

	for t := start; !t.After(end); t = t.Add(step) {
		fix := p.BodyPosition(t, loc, body)
		trace.Samples = append(trace.Samples, AltitudeSample{
			Time:     t,
			Altitude: fix.AltitudeDeg,
			Azimuth:  fix.AzimuthDeg,
		})
	}
	return trace
}

// CurrentAltitude returns the sample closest to now, or nil if the trace is
// empty.
func (t *AltitudeTrace) CurrentAltitude(now time.Time) *AltitudeSample {
	if len(t.Samples) == 0 {
		return nil
	}

	var closest *AltitudeSample
	var minDelta time.Duration = 1<<63 - 1

	for i := range t.Samples {
		delta := t.Samples[i].Time.Sub(now)
		if delta < 0 {
			delta = -delta
		}
		if delta < minDelta {
			minDelta = delta
			closest = &t.Samples[i]
		}
	}
	return closest
}

// Peak returns the highest sample, or nil if the trace is empty.
func (t *AltitudeTrace) Peak() *AltitudeSample {
	if len(t.Samples) == 0 {
		return nil
	}
	peak := &t.Samples[0]
	for i := range t.Samples {
		if t.Samples[i].Altitude > peak.Altitude {
			peak = &t.Samples[i]
		}
	}
	return peak
}

// Altitudes returns the sample altitudes in order.
func (t *AltitudeTrace) Altitudes() []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Altitude
	}
	return out
}

// Passage is a body's rise, culmination and set within a trace window.
// Rise or Set is zero when the crossing falls outside the window.
type Passage struct {
	Rise        time.Time `json:"rise,omitempty"`
	Culmination time.Time `json:"culmination"`
	Set         time.Time `json:"set,omitempty"`
	MaxAltitude float64   `json:"max_altitude_deg"`
	AlwaysUp    bool      `json:"always_up,omitempty"`
	NeverUp     bool      `json:"never_up,omitempty"`
}

// ErrShortTrace is returned when a trace has too few samples to find crossings.
var ErrShortTrace = errors.New("insufficient samples for passage")

// Passage finds the first rise and set across threshold degrees, interpolating
// linearly between samples.
func (t *AltitudeTrace) Passage(threshold float64) (Passage, error) {
	if len(t.Samples) < 3 {
		return Passage{}, ErrShortTrace
	}

	peak := t.Peak()
	p := Passage{Culmination: peak.Time, MaxAltitude: peak.Altitude}

	lowest := t.Samples[0].Altitude
	for _, s := range t.Samples {
		lowest = math.Min(lowest, s.Altitude)
	}
	switch {
	case lowest > threshold:
		p.AlwaysUp = true
		return p, nil
	case peak.Altitude <= threshold:
		p.NeverUp = true
		return p, nil
	}

	for i := 1; i < len(t.Samples); i++ {
		a, b := t.Samples[i-1], t.Samples[i]
		switch {
		case p.Rise.IsZero() && a.Altitude <= threshold && b.Altitude > threshold:
			p.Rise = interpolateCrossing(a, b, threshold)
		case p.Set.IsZero() && a.Altitude > threshold && b.Altitude <= threshold:
			p.Set = interpolateCrossing(a, b, threshold)
		}
	}
	return p, nil
}

// interpolateCrossing finds when the altitude crosses threshold between a and b.
func interpolateCrossing(a, b AltitudeSample, threshold float64) time.Time {
	if math.Abs(b.Altitude-a.Altitude) < 0.0001 {
		return a.Time
	}
	fraction := (threshold - a.Altitude) / (b.Altitude - a.Altitude)
	fraction = math.Max(0, math.Min(1, fraction))
	return a.Time.Add(time.Duration(float64(b.Time.Sub(a.Time)) * fraction))
}

// AltitudeTier buckets an altitude for display.
type AltitudeTier int

const (
	TierBelow  AltitudeTier = iota // below the horizon
	TierLow                        // 0-15 degrees
	TierMedium                     // 15-45 degrees
	TierHigh                       // 45+ degrees
)

// TierFor returns the tier for an altitude in degrees.
func TierFor(altDeg float64) AltitudeTier {
	switch {
	case altDeg <= 0:
		return TierBelow
	case altDeg < 15:
		return TierLow
	case altDeg < 45:
		return TierMedium
	default:
		return TierHigh
	}
}

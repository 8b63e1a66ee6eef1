package clock

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Band colors for the time slider.
const (
	NightColor        = "#050b2c"
	DeepTwilightColor = "#17214d"
	WarmGlowColor     = "#ffb36a"
	SoftGlowColor     = "#ffe3ba"
	DayColor          = "#9dd8ff"
	UnknownColor      = "#d9d9d9"
	WrappedColor      = "#6fb7ff"
)

// GradientStop is a color at a percentage of the day.
type GradientStop struct {
	Pct   float64
	Color string
}

// DaylightBand places sunrise and sunset on the minute-of-day slider in local
// solar time.
type DaylightBand struct {
	SunriseMinutes int
	SunsetMinutes  int
	Valid          bool // both events happen
}

// NewDaylightBand converts sunrise and sunset instants to local solar minutes.
// A zero time marks an event that does not occur.
func NewDaylightBand(sunrise, sunset time.Time, lon float64) DaylightBand {
	if sunrise.IsZero() || sunset.IsZero() {
		return DaylightBand{}
	}
	return DaylightBand{
		SunriseMinutes: MinutesOfDay(LocalSolarTime(sunrise, lon)),
		SunsetMinutes:  MinutesOfDay(LocalSolarTime(sunset, lon)),
		Valid:          true,
	}
}

// Label formats a band edge, or "--:--" when the band is invalid.
func (b DaylightBand) Label(minutes int) string {
	if !b.Valid {
		return "--:--"
	}
	return FormatTime(WithMinutes(time.Time{}, minutes))
}

// Stops returns the slider gradient. An invalid band is flat grey; a band
// whose sunset precedes sunrise is flat blue.
func (b DaylightBand) Stops() []GradientStop {
	if !b.Valid {
		return []GradientStop{{0, UnknownColor}, {100, UnknownColor}}
	}

	rise := float64(b.SunriseMinutes) / (MinutesPerDay - 1) * 100
	set := float64(b.SunsetMinutes) / (MinutesPerDay - 1) * 100
	if set <= rise {
		return []GradientStop{{0, WrappedColor}, {100, WrappedColor}}
	}

	dawnLead := math.Max(0, rise-6)
	duskTrail := math.Min(100, set+6)
	duskStart := math.Max(0, set-3)

	return []GradientStop{
		{0, NightColor},
		{dawnLead, NightColor},
		{dawnLead, DeepTwilightColor},
		{math.Max(0, rise-2.5), WarmGlowColor},
		{rise, SoftGlowColor},
		{math.Min(100, rise+3), DayColor},
		{duskStart, DayColor},
		{duskStart, SoftGlowColor},
		{set, WarmGlowColor},
		{duskTrail, DeepTwilightColor},
		{duskTrail, NightColor},
		{100, NightColor},
	}
}

// ColorAt interpolates the gradient at pct in [0, 100] and returns a hex
// color.
func (b DaylightBand) ColorAt(pct float64) string {
	stops := b.Stops()
	pct = math.Max(0, math.Min(100, pct))

	for i := 1; i < len(stops); i++ {
		lo, hi := stops[i-1], stops[i]
		if pct > hi.Pct {
			continue
		}
		if hi.Pct <= lo.Pct {
			return hi.Color
		}
		t := (pct - lo.Pct) / (hi.Pct - lo.Pct)
		return blendHex(lo.Color, hi.Color, t)
	}
	return stops[len(stops)-1].Color
}

func blendHex(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return b
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendRgb(cb, t).Clamped().Hex()
}

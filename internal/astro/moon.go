package astro

import "math"

var moonPhaseNames = []struct {
	threshold int
	label     string
}{
	{6, "New"},
	{19, "Waxing Crescent"},
	{31, "First Quarter"},
	{44, "Waxing Gibbous"},
	{56, "Full"},
	{69, "Waning Gibbous"},
	{81, "Last Quarter"},
	{94, "Waning Crescent"},
}

var moonPhaseGlyphs = []struct {
	max   float64
	glyph string
}{
	{0.03, "🌑"},
	{0.22, "🌒"},
	{0.28, "🌓"},
	{0.47, "🌔"},
	{0.53, "🌕"},
	{0.72, "🌖"},
	{0.78, "🌗"},
	{0.97, "🌘"},
	{1.01, "🌑"},
}

// MoonPhasePercent rounds a phase fraction to a whole percent.
func MoonPhasePercent(phase float64) int {
	return int(math.Round(phase * 100))
}

// MoonPhaseLabel names the phase, e.g. "Waxing Gibbous Moon".
func MoonPhaseLabel(phase float64) string {
	pct := MoonPhasePercent(phase)
	for _, p := range moonPhaseNames {
		if pct < p.threshold {
			return p.label + " Moon"
		}
	}
	return "New Moon"
}

// MoonPhaseGlyph returns the moon emoji for a phase fraction.
func MoonPhaseGlyph(phase float64) string {
	for _, p := range moonPhaseGlyphs {
		if phase < p.max {
			return p.glyph
		}
	}
	return "🌑"
}

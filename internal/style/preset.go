package style

import (
	"sort"

	"github.com/litescript/ls-skylight/internal/twilight"
)

// Attribute names shared with the renderer.
const (
	SkyColor           = "sky-color"
	HorizonColor       = "horizon-color"
	FogColor           = "fog-color"
	SkyHorizonBlend    = "sky-horizon-blend"
	HorizonFogBlend    = "horizon-fog-blend"
	FogGroundBlend     = "fog-ground-blend"
	AtmosphereBlend    = "atmosphere-blend"
	LightColor         = "light-color"
	LightIntensity     = "light-intensity"
	HillshadeHighlight = "hillshade-highlight"
	HillshadeShadow    = "hillshade-shadow"
)

// ColorAttributes are interpolated in RGB space.
var ColorAttributes = []string{
	SkyColor,
	HorizonColor,
	FogColor,
	LightColor,
	HillshadeHighlight,
	HillshadeShadow,
}

// ScalarAttributes are interpolated linearly.
var ScalarAttributes = []string{
	SkyHorizonBlend,
	HorizonFogBlend,
	FogGroundBlend,
	LightIntensity,
}

// SkyAttributes are forwarded to the renderer's sky.
var SkyAttributes = []string{
	SkyColor,
	HorizonColor,
	FogColor,
	SkyHorizonBlend,
	HorizonFogBlend,
	FogGroundBlend,
	AtmosphereBlend,
}

// Attributes maps attribute names to values.
type Attributes map[string]Value

// Keys returns the attribute names in sorted order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Color returns the named attribute if it is a color.
func (a Attributes) Color(name string) (Color, bool) {
	v, ok := a[name]
	if !ok || !v.IsColor() {
		return Color{}, false
	}
	return v.Color, true
}

// Scalar returns the named attribute if it is a number.
func (a Attributes) Scalar(name string) (float64, bool) {
	v, ok := a[name]
	if !ok || !v.IsScalar() {
		return 0, false
	}
	return v.Scalar, true
}

// Preset is the look attached to a twilight phase.
type Preset struct {
	Attributes Attributes
	Transition twilight.Character
}

// PresetSet maps each enabled phase to its preset. Phases without a preset
// are disabled.
type PresetSet map[twilight.PhaseKey]Preset

// Enabled returns the phases that have a preset, in time-of-day order.
func (s PresetSet) Enabled() []twilight.PhaseKey {
	var keys []twilight.PhaseKey
	for _, k := range twilight.Phases {
		if _, ok := s[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

func preset(tr twilight.Character, sky string, skyHorizon float64, horizon string, horizonFog float64,
	fog string, fogGround float64, light string, intensity float64, highlight, shadow string) Preset {
	return Preset{
		Transition: tr,
		Attributes: Attributes{
			SkyColor:           ColorValue(MustParseColor(sky)),
			SkyHorizonBlend:    ScalarValue(skyHorizon),
			HorizonColor:       ColorValue(MustParseColor(horizon)),
			HorizonFogBlend:    ScalarValue(horizonFog),
			FogColor:           ColorValue(MustParseColor(fog)),
			FogGroundBlend:     ScalarValue(fogGround),
			LightColor:         ColorValue(MustParseColor(light)),
			LightIntensity:     ScalarValue(intensity),
			HillshadeHighlight: ColorValue(MustParseColor(highlight)),
			HillshadeShadow:    ColorValue(MustParseColor(shadow)),
		},
	}
}

// DefaultPresets returns a fresh copy of the built-in presets for all
// fourteen phases.
func DefaultPresets() PresetSet {
	s := PresetSet{
		twilight.Sunrise: preset(twilight.Fast,
			"#f7dc6f", 0.8, "#f5b041", 0.8, "#f7dc6f", 0.5, "#ffb366", 0.6, "#ffb84d", "#2d1f3d"),
		twilight.SunriseEnd: preset(twilight.Fast,
			"#88c6fc", 0.8, "#ffa700", 0.8, "#ffffff", 0.5, "#ffd699", 0.75, "#ffd699", "#3d2f4d"),
		twilight.GoldenHourEnd: preset(twilight.Normal,
			"#5b2c6f", 0.8, "#e74c3c", 0.8, "#f7dc6f", 0.5, "#ffffff", 0.9, "#fff4e6", "#4d3f5d"),
		twilight.SolarNoon: preset(twilight.Stable,
			"#199ef3", 0.7, "#f0f8ff", 0.8, "#2c7fb8", 0.5, "#ffffff", 1.0, "#ffffff", "#5d4f6d"),
		twilight.GoldenHour: preset(twilight.Fast,
			"#ffe90e", 0.8, "#ff6700", 0.8, "#ffb400", 0.5, "#ffcc66", 0.75, "#ffcc66", "#4d3f5d"),
		twilight.SunsetStart: preset(twilight.Fast,
			"#88c6fc", 0.8, "#ffe90e", 0.8, "#ffb400", 0.5, "#ffaa44", 0.7, "#ffaa44", "#3d2f4d"),
		twilight.Sunset: preset(twilight.Fast,
			"#ffe90e", 0.8, "#ff6700", 0.8, "#ffb400", 0.5, "#ff8844", 0.5, "#ff8844", "#2d1f3d"),
		twilight.Dusk: preset(twilight.Normal,
			"#0d0d3e", 0.8, "#4d2149", 0.8, "#30016d", 0.5, "#6644aa", 0.3, "#6644aa", "#1d0f2d"),
		twilight.NauticalDusk: preset(twilight.Normal,
			"#000000", 0.8, "#0426d0", 0.8, "#202b7a", 0.5, "#2244aa", 0.15, "#2d3b66", "#0d0720"),
		twilight.Night: preset(twilight.Stable,
			"#000000", 0.8, "#614cbf", 0.8, "#d4d6d8", 0.9, "#4466cc", 0.1, "#1a1a2e", "#000000"),
		twilight.Nadir: preset(twilight.Stable,
			"#3b3768", 0.8, "#100d36", 0.8, "#282454", 0.5, "#332266", 0.1, "#1f1f3d", "#000000"),
		twilight.NightEnd: preset(twilight.Normal,
			"#1e2b58", 0.8, "#614cbf", 0.8, "#d4d6d8", 0.9, "#4466aa", 0.15, "#232e52", "#0d0720"),
		twilight.NauticalDawn: preset(twilight.Normal,
			"#2c2b48", 0.8, "#0426d0", 0.8, "#202b7a", 0.5, "#5577cc", 0.2, "#3d4a70", "#1a1a33"),
		twilight.Dawn: preset(twilight.Fast,
			"#311f62", 0.8, "#e8817f", 0.8, "#8d5273", 0.5, "#cc88aa", 0.4, "#a797d3", "#2d1f3d"),
	}

	// Fades the atmosphere out as the viewer zooms in.
	s[twilight.SolarNoon].Attributes[AtmosphereBlend] = RawValue([]any{
		"interpolate", []any{"linear"}, []any{"zoom"}, 0, 1, 12, 0,
	})
	return s
}

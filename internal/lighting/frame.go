package lighting

import (
	"encoding/json"
	"time"

	"github.com/litescript/ls-skylight/internal/astro"
	"github.com/litescript/ls-skylight/internal/ephem"
	"github.com/litescript/ls-skylight/internal/style"
	"github.com/litescript/ls-skylight/internal/twilight"
)

// BlendResult is the blended style for one moment.
type BlendResult struct {
	PhaseA  twilight.PhaseKey `json:"phase_a"`
	PhaseB  twilight.PhaseKey `json:"phase_b"`
	From    time.Time         `json:"from"`
	To      time.Time         `json:"to"`
	Raw     float64           `json:"raw_fraction"`
	Eased   float64           `json:"eased_fraction"`
	Blended style.Attributes  `json:"blended"`
}

// SkyValue is a sky attribute, optionally shaped as a zoom curve.
type SkyValue struct {
	Value style.Value
	Curve ZoomCurve
}

// At returns the value at zoom. Non-curve scalars ignore zoom.
func (v SkyValue) At(zoom float64) float64 {
	if len(v.Curve) > 0 {
		return v.Curve.At(zoom)
	}
	return v.Value.Scalar
}

// MarshalJSON encodes curves as interpolate expressions and plain values as
// their attribute value.
func (v SkyValue) MarshalJSON() ([]byte, error) {
	if len(v.Curve) > 0 {
		return json.Marshal(v.Curve.Expression())
	}
	return json.Marshal(v.Value)
}

// Hillshade is the terrain shading state.
type Hillshade struct {
	IlluminationDirection float64      `json:"illumination_direction"`
	Highlight             *style.Color `json:"highlight,omitempty"`
	Shadow                *style.Color `json:"shadow,omitempty"`
}

// SunMarker places the sun on the map.
type SunMarker struct {
	Position astro.GeoPoint     `json:"position"`
	Fix      ephem.CelestialFix `json:"fix"`
}

// MoonMarker places the moon on the map. Position is decorative.
type MoonMarker struct {
	Position     astro.GeoPoint     `json:"position"`
	Fix          ephem.CelestialFix `json:"fix"`
	Phase        float64            `json:"phase"`
	PhasePercent int                `json:"phase_percent"`
	Fraction     float64            `json:"fraction"`
	Label        string             `json:"label"`
	Glyph        string             `json:"glyph"`
}

// Frame is everything a renderer needs for one moment and location.
type Frame struct {
	Time      time.Time           `json:"time"`
	Location  astro.GeoPoint      `json:"location"`
	Blend     BlendResult         `json:"blend"`
	Light     Light               `json:"light"`
	Sky       map[string]SkyValue `json:"sky"`
	Hillshade Hillshade           `json:"hillshade"`
	Sun       SunMarker           `json:"sun"`
	Moon      MoonMarker          `json:"moon"`
	Night     NightLights         `json:"night"`
}

// Renderer receives composed frames.
type Renderer interface {
	Render(Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame) error

// Render implements Renderer.
func (f RendererFunc) Render(fr Frame) error {
	return f(fr)
}

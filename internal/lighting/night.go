package lighting

import (
	"math"
	"strings"
)

// Layers lit at night.
var (
	HeatmapLayers = []string{
		"urban-heatmap-residential",
		"urban-heatmap-roads",
		"urban-heatmap-buildings",
	}
	DetailLayers = []string{
		"night-residential-glow-outer",
		"night-residential-glow",
		"night-residential-core",
		"night-motorways-glow-outer",
		"night-motorways-glow",
		"night-motorways-core",
		"night-roads-glow-outer",
		"night-roads-glow",
		"night-roads-core",
	}
)

var (
	heatmapOpacity = ZoomCurve{{0, 0.9}, {3, 0.9}, {6, 0.6}, {8, 0.3}, {10, 0}}
	detailOpacity  = ZoomCurve{{7, 0}, {9, 0.3}, {12, 0.8}, {15, 0.95}}
)

// NightConfig scales the night lights. Scales are floored at zero and
// LayerScales entries for unknown layers are ignored.
type NightConfig struct {
	HeatmapScale float64            `json:"heatmap_scale"`
	DetailScale  float64            `json:"detail_scale"`
	LayerScales  map[string]float64 `json:"layer_scales,omitempty"`
}

// DefaultNightConfig dims the residential glow relative to roads.
func DefaultNightConfig() NightConfig {
	return NightConfig{
		HeatmapScale: 1,
		DetailScale:  1,
		LayerScales: map[string]float64{
			"night-residential-glow-outer": 1.3,
			"night-residential-glow":       0.75,
			"night-residential-core":       0.5,
		},
	}
}

// LayerScale returns the scale for a detail layer, 1 when unset.
func (c NightConfig) LayerScale(id string) float64 {
	if s, ok := c.LayerScales[id]; ok {
		return math.Max(0, s)
	}
	return 1
}

// Merge returns a copy of c with non-nil overrides applied.
func (c NightConfig) Merge(heatmap, detail *float64, layers map[string]float64) NightConfig {
	out := NightConfig{
		HeatmapScale: c.HeatmapScale,
		DetailScale:  c.DetailScale,
		LayerScales:  make(map[string]float64, len(c.LayerScales)),
	}
	for k, v := range c.LayerScales {
		out.LayerScales[k] = v
	}
	if heatmap != nil {
		out.HeatmapScale = math.Max(0, *heatmap)
	}
	if detail != nil {
		out.DetailScale = math.Max(0, *detail)
	}
	for id, v := range layers {
		if isDetailLayer(id) {
			out.LayerScales[id] = math.Max(0, v)
		}
	}
	return out
}

// NightLayer is the opacity curve for one night layer.
type NightLayer struct {
	ID       string    `json:"id"`
	Property string    `json:"property"`
	Opacity  ZoomCurve `json:"opacity"`
}

// NightLights is the night decoration state for one light intensity.
type NightLights struct {
	Factor  float64      `json:"factor"`
	Heatmap float64      `json:"heatmap"`
	Detail  float64      `json:"detail"`
	Layers  []NightLayer `json:"layers"`
}

// NightFactor maps light intensity to night strength: about 0 in daylight,
// 1 at full night.
func NightFactor(intensity float64) float64 {
	return clamp01(1.3 - intensity*2.5)
}

// ComputeNight derives the night layers for a light intensity.
func ComputeNight(cfg NightConfig, intensity float64) NightLights {
	factor := NightFactor(intensity)
	n := NightLights{
		Factor:  factor,
		Heatmap: clamp01(factor * math.Max(0, cfg.HeatmapScale)),
		Detail:  clamp01(factor * math.Max(0, cfg.DetailScale)),
		Layers:  make([]NightLayer, 0, len(HeatmapLayers)+len(DetailLayers)),
	}

	for _, id := range HeatmapLayers {
		n.Layers = append(n.Layers, NightLayer{
			ID:       id,
			Property: "heatmap-opacity",
			Opacity:  heatmapOpacity.Scale(n.Heatmap),
		})
	}

	for _, id := range DetailLayers {
		prop := "line-opacity"
		if strings.Contains(id, "residential") {
			prop = "fill-opacity"
		}
		scale := n.Detail * coreFactor(id) * cfg.LayerScale(id)
		n.Layers = append(n.Layers, NightLayer{
			ID:       id,
			Property: prop,
			Opacity:  detailOpacity.Scale(scale),
		})
	}
	return n
}

// Layer returns the named layer, if present.
func (n NightLights) Layer(id string) (NightLayer, bool) {
	for _, l := range n.Layers {
		if l.ID == id {
			return l, true
		}
	}
	return NightLayer{}, false
}

func coreFactor(id string) float64 {
	switch {
	case strings.Contains(id, "outer"):
		return 0.2
	case strings.Contains(id, "glow"):
		return 0.45
	default:
		return 0.75
	}
}

func isDetailLayer(id string) bool {
	for _, l := range DetailLayers {
		if l == id {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

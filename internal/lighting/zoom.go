package lighting

import (
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/litescript/ls-skylight/internal/style"
)

// ZoomStop is one (zoom, value) pair of a zoom curve.
type ZoomStop struct {
	Zoom  float64 `json:"zoom"`
	Value float64 `json:"value"`
}

// ZoomCurve is a piecewise-linear function of map zoom. Stops are ordered by
// strictly increasing zoom.
type ZoomCurve []ZoomStop

// At evaluates the curve at zoom. Values outside the stops hold the nearest
// end value.
func (c ZoomCurve) At(zoom float64) float64 {
	switch len(c) {
	case 0:
		return 0
	case 1:
		return c[0].Value
	}

	xs := make([]float64, len(c))
	ys := make([]float64, len(c))
	for i, s := range c {
		xs[i], ys[i] = s.Zoom, s.Value
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return c[0].Value
	}
	return pl.Predict(zoom)
}

// Scale returns a copy of the curve with every value multiplied by f.
func (c ZoomCurve) Scale(f float64) ZoomCurve {
	out := make(ZoomCurve, len(c))
	for i, s := range c {
		out[i] = ZoomStop{Zoom: s.Zoom, Value: s.Value * f}
	}
	return out
}

// Expression renders the curve as a linear zoom interpolate expression.
func (c ZoomCurve) Expression() []any {
	expr := []any{"interpolate", []any{"linear"}, []any{"zoom"}}
	for _, s := range c {
		expr = append(expr, s.Zoom, s.Value)
	}
	return expr
}

// Zoom levels of the low, mid and high stops of a sky curve.
const (
	ZoomLow  = 0
	ZoomMid  = 6
	ZoomHigh = 10
)

// ZoomShift moves a base value by Delta and clamps it into [Min, Max].
// A zero Delta keeps the base value unchanged.
type ZoomShift struct {
	Delta float64 `json:"delta"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

func (s ZoomShift) apply(v float64) float64 {
	if s.Delta == 0 {
		return v
	}
	return math.Max(s.Min, math.Min(s.Max, v+s.Delta))
}

// ZoomRule extends a scalar sky attribute into a three-stop zoom curve. The
// mid stop is always the base value.
type ZoomRule struct {
	Attribute string    `json:"attribute"`
	Low       ZoomShift `json:"low"`
	High      ZoomShift `json:"high"`
}

// Curve builds the zoom curve for base value v.
func (r ZoomRule) Curve(v float64) ZoomCurve {
	return ZoomCurve{
		{Zoom: ZoomLow, Value: r.Low.apply(v)},
		{Zoom: ZoomMid, Value: v},
		{Zoom: ZoomHigh, Value: r.High.apply(v)},
	}
}

// DefaultZoomRules flatten the horizon toward high zoom and thicken the
// ground fog.
func DefaultZoomRules() []ZoomRule {
	thinner := ZoomShift{Delta: -0.2, Min: 0.3, Max: 1}
	return []ZoomRule{
		{Attribute: style.SkyHorizonBlend, High: thinner},
		{Attribute: style.HorizonFogBlend, High: thinner},
		{
			Attribute: style.FogGroundBlend,
			Low:       ZoomShift{Delta: -0.2, Min: 0, Max: 1},
			High:      ZoomShift{Delta: 0.1, Min: 0, Max: 1},
		},
	}
}

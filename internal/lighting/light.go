package lighting

import (
	"math"

	"github.com/litescript/ls-skylight/internal/astro"
	"github.com/litescript/ls-skylight/internal/style"
)

// LightRadial is the fixed radial distance of the light. The light is
// always far away.
const LightRadial = 1.5

// DefaultLightIntensity applies when the blend has no light intensity.
const DefaultLightIntensity = 0.5

// DefaultLightColor applies when the blend has no light color.
var DefaultLightColor = style.Color{R: 255, G: 255, B: 255}

// Light describes the scene's directional light.
type Light struct {
	Radial     float64     `json:"radial"`
	AzimuthDeg float64     `json:"azimuth_deg"`
	PolarDeg   float64     `json:"polar_deg"`
	Direction  astro.Vec3  `json:"direction"`
	Color      style.Color `json:"color"`
	Intensity  float64     `json:"intensity"`
}

// Position returns the light position as [radial, azimuth, polar].
func (l Light) Position() [3]float64 {
	return [3]float64{l.Radial, l.AzimuthDeg, l.PolarDeg}
}

// LightAngles maps a subsolar point to the light's azimuth and polar angle.
func LightAngles(subsolar astro.GeoPoint) (azimuthDeg, polarDeg float64) {
	azimuthDeg = math.Mod(180-subsolar.Lon+360, 360)
	polarDeg = math.Max(0, math.Min(180, 90-subsolar.Lat))
	return azimuthDeg, polarDeg
}

// NewLight builds the light for a subsolar point and blended attributes.
func NewLight(subsolar astro.GeoPoint, attrs style.Attributes) Light {
	az, polar := LightAngles(subsolar)

	color, ok := attrs.Color(style.LightColor)
	if !ok {
		color = DefaultLightColor
	}
	intensity, ok := attrs.Scalar(style.LightIntensity)
	if !ok {
		intensity = DefaultLightIntensity
	}

	return Light{
		Radial:     LightRadial,
		AzimuthDeg: az,
		PolarDeg:   polar,
		Direction:  astro.SphericalToCartesian(LightRadial, az, polar).Normalized(),
		Color:      color,
		Intensity:  intensity,
	}
}

// Package astro provides astronomical coordinate transformations and sky math.
package astro

import (
	"fmt"
	"math"
)

// TrigLatitudeLimit bounds latitudes fed into formulas that are singular at the poles.
const TrigLatitudeLimit = 85.0

// GeoPoint is a geographic position in degrees (north and east positive).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Normalized returns the point with latitude clamped to [-90, 90] and
// longitude wrapped into (-180, 180].
func (p GeoPoint) Normalized() GeoPoint {
	return GeoPoint{Lat: ClampLatitude(p.Lat), Lon: NormalizeLongitude(p.Lon)}
}

// String formats the point as e.g. "36.26°N 137.92°E".
func (p GeoPoint) String() string {
	ns, ew := "N", "E"
	if p.Lat < 0 {
		ns = "S"
	}
	if p.Lon < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.2f°%s %.2f°%s", math.Abs(p.Lat), ns, math.Abs(p.Lon), ew)
}

// NormalizeLongitude wraps lon into (-180, 180].
func NormalizeLongitude(lon float64) float64 {
	l := math.Mod(lon+180, 360)
	if l < 0 {
		l += 360
	}
	l -= 180
	if l <= -180 {
		l += 360
	}
	return l
}

// ClampLatitude clamps lat into [-90, 90].
func ClampLatitude(lat float64) float64 {
	return clamp(lat, -90, 90)
}

// TrigLatitude clamps lat into [-TrigLatitudeLimit, TrigLatitudeLimit].
func TrigLatitude(lat float64) float64 {
	return clamp(lat, -TrigLatitudeLimit, TrigLatitudeLimit)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalizeAngle360 normalizes an angle to 0-360 degrees.
func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Package astro provides astronomical coordinate transformations and sky math.
package astro

import (
	"math"
	"time"
)

// Low-precision solar model (about 1° accuracy near the present epoch).
// Angles are radians unless a name says otherwise.
const (
	rad       = math.Pi / 180
	dayMs     = 86400000.0
	j1970     = 2440588.0
	j2000     = 2451545.0
	obliquity = rad * 23.4397
)

// JulianDate returns the Julian Date of t, anchored at the Unix epoch.
func JulianDate(t time.Time) float64 {
	return float64(t.UnixMilli())/dayMs - 0.5 + j1970
}

// DaysSinceEpoch returns the (fractional) number of days since J2000.0.
func DaysSinceEpoch(t time.Time) float64 {
	return JulianDate(t) - j2000
}

// SolarMeanAnomaly returns the sun's mean anomaly for day offset d.
func SolarMeanAnomaly(d float64) float64 {
	return rad * (357.5291 + 0.98560028*d)
}

// EclipticLongitude returns the sun's apparent geocentric ecliptic longitude
// for mean anomaly m, using a three-term equation of center.
func EclipticLongitude(m float64) float64 {
	c := rad * (1.9148*math.Sin(m) + 0.02*math.Sin(2*m) + 0.0003*math.Sin(3*m))
	perihelion := rad * 102.9372
	return m + c + perihelion + math.Pi
}

// RightAscension converts ecliptic longitude l and latitude b to right ascension.
func RightAscension(l, b float64) float64 {
	return math.Atan2(math.Sin(l)*math.Cos(obliquity)-math.Tan(b)*math.Sin(obliquity), math.Cos(l))
}

// Declination converts ecliptic longitude l and latitude b to declination.
func Declination(l, b float64) float64 {
	return math.Asin(math.Sin(b)*math.Cos(obliquity) + math.Cos(b)*math.Sin(obliquity)*math.Sin(l))
}

// SiderealTime returns Greenwich mean sidereal time in degrees [0, 360) for day offset d.
func SiderealTime(d float64) float64 {
	return normalizeAngle360(280.16 + 360.9856235*d)
}

// SunCoords returns the sun's right ascension and declination (radians) for
// day offset d, assuming the sun lies on the ecliptic.
func SunCoords(d float64) (ra, dec float64) {
	l := EclipticLongitude(SolarMeanAnomaly(d))
	return RightAscension(l, 0), Declination(l, 0)
}

// SunPosition returns the sun's equatorial coordinates in degrees, RA in [0, 360).
func SunPosition(t time.Time) (raDeg, decDeg float64) {
	ra, dec := SunCoords(DaysSinceEpoch(t))
	return normalizeAngle360(radToDeg(ra)), radToDeg(dec)
}

// AngularSeparation calculates the angular separation between two points on the celestial sphere.
// All coordinates in degrees. Returns separation in degrees.
func AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	ra1Rad := degToRad(ra1)
	dec1Rad := degToRad(dec1)
	ra2Rad := degToRad(ra2)
	dec2Rad := degToRad(dec2)

	// Haversine formula for angular separation
	dRA := ra2Rad - ra1Rad
	dDec := dec2Rad - dec1Rad

	a := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(dec1Rad)*math.Cos(dec2Rad)*math.Sin(dRA/2)*math.Sin(dRA/2)
	if a > 1 {
		a = 1
	}

	return radToDeg(2 * math.Asin(math.Sqrt(a)))
}

// Package astro provides astronomical coordinate transformations and sky math.
package astro

import (
	"math"
	"time"
)

// SkyCoord represents celestial coordinates with both equatorial (RA/Dec)
// and horizontal (Az/El) components.
type SkyCoord struct {
	// Equatorial coordinates (of date)
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)

	// Horizontal coordinates (observer-relative)
	AzDeg float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
	ElDeg float64 // Elevation/Altitude in degrees (0=horizon, 90=zenith)

	// Distance (optional, used for the moon)
	RangeKm float64
}

// EquatorialToHorizontal converts equatorial coordinates (RA/Dec) to horizontal
// coordinates (Az/El) for an observer at loc and time t, using the
// low-precision sidereal time.
func EquatorialToHorizontal(eq SkyCoord, loc GeoPoint, t time.Time) SkyCoord {
	return HorizontalFromSidereal(eq, loc, SiderealTime(DaysSinceEpoch(t)))
}

// HorizontalFromSidereal converts eq to horizontal coordinates given the
// Greenwich sidereal time in degrees.
//
// Uses standard astronomical conventions:
//   - Azimuth: 0° = North, 90° = East, 180° = South, 270° = West
//   - Elevation: 0° = horizon, 90° = zenith
func HorizontalFromSidereal(eq SkyCoord, loc GeoPoint, gstDeg float64) SkyCoord {
	loc = loc.Normalized()
	lat := degToRad(loc.Lat)
	ra := degToRad(eq.RAdeg)
	dec := degToRad(eq.DecDeg)

	lst := normalizeAngle360(gstDeg + loc.Lon)

	// Hour Angle = LST - RA
	ha := degToRad(lst) - ra

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	alt := math.Asin(clamp(sinAlt, -1, 1))

	// Azimuth is undefined at the poles; use the clamped latitude there.
	azLat := degToRad(TrigLatitude(loc.Lat))
	cosAz := (math.Sin(dec) - math.Sin(alt)*math.Sin(azLat)) / (math.Cos(alt) * math.Cos(azLat))
	cosAz = clamp(cosAz, -1, 1)

	az := math.Acos(cosAz)

	// Adjust azimuth quadrant: if hour angle is positive, azimuth is west of south
	if math.Sin(ha) > 0 {
		az = 2*math.Pi - az
	}

	return SkyCoord{
		RAdeg:   eq.RAdeg,
		DecDeg:  eq.DecDeg,
		AzDeg:   normalizeAngle360(radToDeg(az)),
		ElDeg:   radToDeg(alt),
		RangeKm: eq.RangeKm,
	}
}

// EclipticToEquatorial converts ecliptic longitude/latitude in degrees to
// RA/Dec in degrees using the fixed obliquity.
func EclipticToEquatorial(lonDeg, latDeg float64) (raDeg, decDeg float64) {
	l, b := degToRad(lonDeg), degToRad(latDeg)
	return normalizeAngle360(radToDeg(RightAscension(l, b))), radToDeg(Declination(l, b))
}

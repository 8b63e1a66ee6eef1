package astro

import (
	"math"
	"time"
)

// SubsolarPoint returns the geographic point directly beneath the sun at t.
func SubsolarPoint(t time.Time) GeoPoint {
	d := DaysSinceEpoch(t)
	ra, dec := SunCoords(d)
	return GeoPoint{
		Lat: ClampLatitude(radToDeg(dec)),
		Lon: NormalizeLongitude(radToDeg(ra) - SiderealTime(d)),
	}
}

// SublunarPoint returns an approximate point beneath the moon for a moon
// phase fraction in [0, 1).
//
// This is a decorative approximation, NOT an ephemeris. Longitude offsets the
// sun's clock-derived antimeridian by phase·360°; latitude is a seasonal
// declination term plus a phase-coupled wobble. It has no orbital basis and
// is only fit for placing a marker on a map.
func SublunarPoint(t time.Time, phase float64) GeoPoint {
	phase -= math.Floor(phase)

	u := t.UTC()
	hours := float64(u.Hour()) + float64(u.Minute())/60
	sunLon := NormalizeLongitude(180 - hours*15)
	moonLon := NormalizeLongitude(sunLon + phase*360)

	doy := float64(t.YearDay())
	lat := 23.44*math.Sin(2*math.Pi*(doy-81)/365.25) + 5*math.Sin(2*math.Pi*phase)

	return GeoPoint{Lat: lat, Lon: moonLon}.Normalized()
}

// SolarNoon returns the meridian transit of the sun at longitude lon nearest to t.
func SolarNoon(t time.Time, lon float64) time.Time {
	return meridianCrossing(t, NormalizeLongitude(lon))
}

// SolarMidnight returns the antimeridian transit of the sun at longitude lon
// nearest to t.
func SolarMidnight(t time.Time, lon float64) time.Time {
	return meridianCrossing(t, NormalizeLongitude(lon+180))
}

// meridianCrossing iterates until the subsolar longitude matches lon. The
// subsolar point drifts west by about 15° per hour.
func meridianCrossing(t time.Time, lon float64) time.Time {
	const degPerHour = 15.0
	guess := t
	for i := 0; i < 5; i++ {
		delta := NormalizeLongitude(SubsolarPoint(guess).Lon - lon)
		step := time.Duration(delta / degPerHour * float64(time.Hour))
		guess = guess.Add(step)
		if step.Abs() < time.Second {
			break
		}
	}
	return guess
}

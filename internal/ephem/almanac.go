package ephem

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/litescript/ls-skylight/internal/astro"
	"github.com/litescript/ls-skylight/internal/twilight"
)

// maxEventOffset bounds how far a twilight event may lie from solar noon.
// Anything outside belongs to another day.
const maxEventOffset = 13 * time.Hour

// sunElevations pairs each morning/evening event with its solar elevation.
var sunElevations = []struct {
	morning twilight.PhaseKey
	evening twilight.PhaseKey
	deg     float64
}{
	{twilight.NightEnd, twilight.Night, -18},
	{twilight.NauticalDawn, twilight.NauticalDusk, -12},
	{twilight.Dawn, twilight.Dusk, -6},
	{twilight.Sunrise, twilight.Sunset, -0.833},
	{twilight.SunriseEnd, twilight.SunsetStart, -0.3},
	{twilight.GoldenHourEnd, twilight.GoldenHour, 6},
}

// AlmanacProvider computes positions and twilight events locally.
// Twilight instants come from go-sunrise; solar noon and nadir from the
// subsolar estimator; the moon from Meeus' lunar theory.
type AlmanacProvider struct {
	mode Mode
}

// NewAlmanac creates a provider using the given solar model.
func NewAlmanac(mode Mode) *AlmanacProvider {
	return &AlmanacProvider{mode: mode}
}

// Name implements Provider.
func (p *AlmanacProvider) Name() string {
	return "almanac/" + p.mode.String()
}

// Mode returns the solar model in use.
func (p *AlmanacProvider) Mode() Mode {
	return p.mode
}

// TwilightEvents implements Provider.
func (p *AlmanacProvider) TwilightEvents(day time.Time, loc astro.GeoPoint) map[twilight.PhaseKey]time.Time {
	loc = loc.Normalized()
	y, m, d := SolarDate(day, loc.Lon)

	meanNoon := time.Date(y, m, d, 12, 0, 0, 0, time.UTC).
		Add(-time.Duration(loc.Lon / 15 * float64(time.Hour)))
	noon := astro.SolarNoon(meanNoon, loc.Lon)

	events := map[twilight.PhaseKey]time.Time{
		twilight.SolarNoon: noon,
		twilight.Nadir:     astro.SolarMidnight(noon.Add(-12*time.Hour), loc.Lon),
	}

	lo, hi := noon.Add(-maxEventOffset), noon.Add(maxEventOffset)
	inDay := func(t time.Time) bool {
		return !t.IsZero() && t.After(lo) && t.Before(hi)
	}

	for _, e := range sunElevations {
		morning, evening := sunrise.TimeOfElevation(loc.Lat, loc.Lon, e.deg, y, m, d)
		if !morning.IsZero() && !evening.IsZero() && morning.After(evening) {
			morning, evening = evening, morning
		}
		if inDay(morning) {
			events[e.morning] = morning.UTC()
		}
		if inDay(evening) {
			events[e.evening] = evening.UTC()
		}
	}
	return events
}

// BodyPosition implements Provider.
func (p *AlmanacProvider) BodyPosition(t time.Time, loc astro.GeoPoint, body Body) CelestialFix {
	var eq astro.SkyCoord
	switch body {
	case Moon:
		lon, lat, dist := moonEcliptic(t)
		eq.RAdeg, eq.DecDeg = astro.EclipticToEquatorial(lon, lat)
		eq.RangeKm = dist
	default:
		eq.RAdeg, eq.DecDeg = p.sunEquatorial(t)
	}

	h := p.horizontal(eq, loc, t)
	return CelestialFix{AltitudeDeg: h.ElDeg, AzimuthDeg: h.AzDeg}
}

// MoonIllumination implements Provider.
func (p *AlmanacProvider) MoonIllumination(t time.Time) MoonIllumination {
	moonLon, moonLat, _ := moonEcliptic(t)
	sunLon := solar.ApparentLongitude(base.J2000Century(julian.TimeToJD(t.UTC()))).Deg()

	phase := normalize360(moonLon-sunLon) / 360
	elongation := astro.AngularSeparation(sunLon, 0, moonLon, moonLat)
	return MoonIllumination{
		Phase:    phase,
		Fraction: (1 - cosDeg(elongation)) / 2,
	}
}

func (p *AlmanacProvider) sunEquatorial(t time.Time) (raDeg, decDeg float64) {
	if p.mode == ModeLowPrecision {
		return astro.SunPosition(t)
	}
	ra, dec := solar.ApparentEquatorial(julian.TimeToJD(t.UTC()))
	return normalize360(ra.Deg()), dec.Deg()
}

func (p *AlmanacProvider) horizontal(eq astro.SkyCoord, loc astro.GeoPoint, t time.Time) astro.SkyCoord {
	if p.mode == ModeLowPrecision {
		return astro.EquatorialToHorizontal(eq, loc, t)
	}
	gst := sidereal.Apparent(julian.TimeToJD(t.UTC()))
	return astro.HorizontalFromSidereal(eq, loc, gst.Angle().Deg())
}

// moonEcliptic returns the moon's geocentric ecliptic longitude and latitude
// in degrees and its distance in km.
func moonEcliptic(t time.Time) (lonDeg, latDeg, distKm float64) {
	λ, β, Δ := moonposition.Position(julian.TimeToJD(t.UTC()))
	return normalize360(λ.Deg()), β.Deg(), Δ
}

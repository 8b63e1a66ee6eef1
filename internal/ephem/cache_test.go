package ephem

import (
	"testing"
	"time"

	"github.com/litescript/ls-skylight/internal/astro"
	"github.com/litescript/ls-skylight/internal/twilight"
)

// countingProvider returns a mean solar noon for the location and counts
// event lookups.
type countingProvider struct {
	calls int
}

func (c *countingProvider) Name() string { return "counting" }

func (c *countingProvider) BodyPosition(t time.Time, loc astro.GeoPoint, body Body) CelestialFix {
	// Altitude rises one degree per hour after midnight UTC.
	return CelestialFix{AltitudeDeg: float64(t.Hour()), AzimuthDeg: 180}
}

func (c *countingProvider) MoonIllumination(time.Time) MoonIllumination {
	return MoonIllumination{Phase: 0.5, Fraction: 1}
}

func (c *countingProvider) TwilightEvents(day time.Time, loc astro.GeoPoint) map[twilight.PhaseKey]time.Time {
	c.calls++
	y, m, d := SolarDate(day, loc.Lon)
	noon := time.Date(y, m, d, 12, 0, 0, 0, time.UTC).Add(-time.Duration(loc.Lon / 15 * float64(time.Hour)))
	return map[twilight.PhaseKey]time.Time{
		twilight.SolarNoon: noon,
	}
}

func TestCachedProviderHits(t *testing.T) {
	inner := &countingProvider{}
	c := NewCachedProvider(inner, time.Hour)
	loc := astro.GeoPoint{Lat: 51.5, Lon: 0}
	day := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	c.TwilightEvents(day, loc)
	c.TwilightEvents(day.Add(6*time.Hour), loc)
	// An unnormalized longitude maps to the same entry.
	c.TwilightEvents(day, astro.GeoPoint{Lat: 51.5, Lon: 360})

	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if len(c.events) != 1 {
		t.Errorf("cached entries = %d, want 1", len(c.events))
	}

	c.TwilightEvents(day.AddDate(0, 0, 1), loc)
	c.TwilightEvents(day, astro.GeoPoint{Lat: 40, Lon: 0})
	if inner.calls != 3 {
		t.Errorf("inner calls = %d, want 3", inner.calls)
	}
}

func TestCachedProviderNearbyLocations(t *testing.T) {
	day := time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC)
	a := astro.GeoPoint{Lat: 40, Lon: 10.004}
	b := astro.GeoPoint{Lat: 40, Lon: 9.996}

	want := (&countingProvider{}).TwilightEvents(day, b)

	inner := &countingProvider{}
	c := NewCachedProvider(inner, time.Hour)
	c.TwilightEvents(day, a)
	got := c.TwilightEvents(day, b)

	if !got[twilight.SolarNoon].Equal(want[twilight.SolarNoon]) {
		t.Errorf("events for %v after querying %v = %v, want %v", b, a, got[twilight.SolarNoon], want[twilight.SolarNoon])
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}

	// Repeating either query is answered from the cache unchanged.
	if again := c.TwilightEvents(day, b); !again[twilight.SolarNoon].Equal(want[twilight.SolarNoon]) || inner.calls != 2 {
		t.Errorf("repeat for %v = %v after %d calls", b, again[twilight.SolarNoon], inner.calls)
	}
}

func TestCachedProviderExpiry(t *testing.T) {
	inner := &countingProvider{}
	c := NewCachedProvider(inner, time.Hour)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	loc := astro.GeoPoint{Lat: 10, Lon: 10}
	day := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	c.TwilightEvents(day, loc)
	now = now.Add(59 * time.Minute)
	c.TwilightEvents(day, loc)
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d before expiry, want 1", inner.calls)
	}

	now = now.Add(2 * time.Minute)
	c.TwilightEvents(day, loc)
	if inner.calls != 2 {
		t.Errorf("inner calls = %d after expiry, want 2", inner.calls)
	}
}

func TestCachedProviderReturnsCopy(t *testing.T) {
	c := NewCachedProvider(&countingProvider{}, 0)
	loc := astro.GeoPoint{Lat: 0, Lon: 0}
	day := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	first := c.TwilightEvents(day, loc)
	delete(first, twilight.SolarNoon)

	second := c.TwilightEvents(day, loc)
	if _, ok := second[twilight.SolarNoon]; !ok {
		t.Error("mutating a returned map changed the cache")
	}
}

func TestCachedProviderDelegates(t *testing.T) {
	c := NewCachedProvider(&countingProvider{}, 0)
	if c.Name() != "counting+cache" {
		t.Errorf("Name() = %q", c.Name())
	}
	if got := c.MoonIllumination(time.Now()); got.Fraction != 1 {
		t.Errorf("MoonIllumination() = %+v", got)
	}
	var _ Provider = c
}

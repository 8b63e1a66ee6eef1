// Package ephem provides sun and moon positions and the daily twilight events.
package ephem

import (
	"time"

	"github.com/litescript/ls-skylight/internal/astro"
	"github.com/litescript/ls-skylight/internal/twilight"
)

// Body identifies a sky body.
type Body int

const (
	Sun Body = iota
	Moon
)

// String returns the body name.
func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	default:
		return "unknown"
	}
}

// CelestialFix is a body's apparent position for an observer.
type CelestialFix struct {
	AltitudeDeg float64 `json:"altitude_deg"` // negative below the horizon
	AzimuthDeg  float64 `json:"azimuth_deg"`  // compass bearing, 0=N, 90=E
}

// MoonIllumination describes the moon's phase.
type MoonIllumination struct {
	Phase    float64 `json:"phase"`    // [0, 1): 0 new, 0.5 full
	Fraction float64 `json:"fraction"` // illuminated fraction of the disc
}

// Provider defines the interface for ephemeris sources.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// BodyPosition returns the altitude/azimuth of body at t seen from loc.
	BodyPosition(t time.Time, loc astro.GeoPoint, body Body) CelestialFix

	// MoonIllumination returns the moon's phase at t.
	MoonIllumination(t time.Time) MoonIllumination

	// TwilightEvents returns the twilight events of the solar day containing
	// day at loc. Events that do not occur that day are absent.
	TwilightEvents(day time.Time, loc astro.GeoPoint) map[twilight.PhaseKey]time.Time
}

// Mode selects the solar position model.
type Mode int

const (
	ModeMeeus        Mode = iota // Meeus apparent coordinates (default)
	ModeLowPrecision             // The package's own ~1° model
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMeeus:
		return "meeus"
	case ModeLowPrecision:
		return "low"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string. Unknown values select ModeMeeus.
func ParseMode(s string) Mode {
	switch s {
	case "low", "low-precision":
		return ModeLowPrecision
	default:
		return ModeMeeus
	}
}

// SolarDate returns the local mean solar calendar date of t at longitude lon.
func SolarDate(t time.Time, lon float64) (year int, month time.Month, day int) {
	offset := time.Duration(astro.NormalizeLongitude(lon) / 15 * float64(time.Hour))
	return t.UTC().Add(offset).Date()
}

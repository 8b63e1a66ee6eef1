// Package twilight orders a day's named twilight events and locates the pair
// of phases bracketing a moment.
package twilight

import "fmt"

// PhaseKey names a twilight event.
type PhaseKey string

// The fourteen phase keys, in time-of-day order for a typical day.
const (
	Nadir         PhaseKey = "nadir"
	NightEnd      PhaseKey = "nightEnd"
	NauticalDawn  PhaseKey = "nauticalDawn"
	Dawn          PhaseKey = "dawn"
	Sunrise       PhaseKey = "sunrise"
	SunriseEnd    PhaseKey = "sunriseEnd"
	GoldenHourEnd PhaseKey = "goldenHourEnd"
	SolarNoon     PhaseKey = "solarNoon"
	GoldenHour    PhaseKey = "goldenHour"
	SunsetStart   PhaseKey = "sunsetStart"
	Sunset        PhaseKey = "sunset"
	Dusk          PhaseKey = "dusk"
	NauticalDusk  PhaseKey = "nauticalDusk"
	Night         PhaseKey = "night"
)

// Phases lists every key in time-of-day order. Only the chronological order
// of a concrete day's events is meaningful; nadir may fall on either side of
// midnight.
var Phases = []PhaseKey{
	Nadir,
	NightEnd,
	NauticalDawn,
	Dawn,
	Sunrise,
	SunriseEnd,
	GoldenHourEnd,
	SolarNoon,
	GoldenHour,
	SunsetStart,
	Sunset,
	Dusk,
	NauticalDusk,
	Night,
}

// Valid reports whether k is one of the fourteen known keys.
func (k PhaseKey) Valid() bool {
	for _, p := range Phases {
		if p == k {
			return true
		}
	}
	return false
}

// ParsePhaseKey converts a string to a PhaseKey.
func ParsePhaseKey(s string) (PhaseKey, error) {
	k := PhaseKey(s)
	if !k.Valid() {
		return "", fmt.Errorf("twilight: unknown phase %q", s)
	}
	return k, nil
}

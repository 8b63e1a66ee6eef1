package twilight

import (
	"errors"
	"sort"
	"time"

	"github.com/litescript/ls-skylight/internal/astro"
)

// ErrNoSchedule is returned when fewer than two enabled events resolve in
// the three-day window around a moment.
var ErrNoSchedule = errors.New("twilight: fewer than two phase events in window")

// minSpan floors the bracket span so the fraction never divides by zero.
const minSpan = time.Millisecond

// EventSource supplies a day's twilight events for a location. A key that is
// absent from the result does not occur that day (e.g. polar day or night).
type EventSource interface {
	TwilightEvents(day time.Time, loc astro.GeoPoint) map[PhaseKey]time.Time
}

// Event is a single named twilight instant.
type Event struct {
	Key  PhaseKey  `json:"key"`
	Time time.Time `json:"time"`
}

// Bracket is the pair of events surrounding a moment.
type Bracket struct {
	From     Event   `json:"from"`
	To       Event   `json:"to"`
	Fraction float64 `json:"fraction"` // raw progress from From to To, in [0, 1]
}

// Span returns the duration between the two events.
func (b Bracket) Span() time.Duration {
	return b.To.Time.Sub(b.From.Time)
}

// Collect gathers the enabled events for the day before, the day of, and the
// day after t, sorted chronologically. Ties keep phase order.
func Collect(src EventSource, t time.Time, loc astro.GeoPoint, enabled []PhaseKey) []Event {
	loc = loc.Normalized()
	on := make(map[PhaseKey]bool, len(enabled))
	for _, k := range enabled {
		on[k] = true
	}

	var events []Event
	for offset := -1; offset <= 1; offset++ {
		day := t.Add(time.Duration(offset) * 24 * time.Hour)
		times := src.TwilightEvents(day, loc)
		for _, k := range Phases {
			if !on[k] {
				continue
			}
			ts, ok := times[k]
			if !ok || ts.IsZero() {
				continue
			}
			events = append(events, Event{Key: k, Time: ts})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
	return events
}

// Locate finds the bracket around t in a chronologically sorted event list.
func Locate(events []Event, t time.Time) (Bracket, error) {
	n := len(events)
	if n < 2 {
		return Bracket{}, ErrNoSchedule
	}

	idx := sort.Search(n, func(i int) bool {
		return events[i].Time.After(t)
	})
	if idx == n {
		idx = n - 1
	}

	br := Bracket{From: events[max(0, idx-1)], To: events[idx%n]}

	span := max(br.Span(), minSpan)
	br.Fraction = clamp01(float64(t.Sub(br.From.Time)) / float64(span))
	return br, nil
}

// FindBracket collects the three-day schedule around t and locates the
// bracketing pair of events.
func FindBracket(src EventSource, t time.Time, loc astro.GeoPoint, enabled []PhaseKey) (Bracket, error) {
	return Locate(Collect(src, t, loc, enabled), t)
}

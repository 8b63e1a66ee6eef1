// Package state provides thread-safe state management for the application.
package state

import (
	"errors"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/litescript/ls-skylight/internal/lighting"
	"github.com/litescript/ls-skylight/internal/twilight"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventPhaseChange    EventType = "PHASE_CHANGE"
	EventLocationChange EventType = "LOCATION_CHANGE"
	EventStateLost      EventType = "STATE_LOST"
	EventStateRestored  EventType = "STATE_RESTORED"
)

// Event represents a change in the lighting state.
type Event struct {
	Type      EventType         `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Moment    time.Time         `json:"moment,omitempty"`
	OldPhase  twilight.PhaseKey `json:"old_phase,omitempty"`
	NewPhase  twilight.PhaseKey `json:"new_phase,omitempty"`
	Location  string            `json:"location,omitempty"`
	Detail    string            `json:"detail,omitempty"`
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// SeriesStats summarizes a time series.
type SeriesStats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Manager handles all shared application state with thread-safe access.
// It implements lighting.Renderer.
type Manager struct {
	mu sync.RWMutex

	// Current state
	current         *lighting.Frame
	lastUpdate      time.Time
	lastError       error
	composeDuration time.Duration
	lost            bool

	// History buffers
	intensity   []TimeSeries
	nightFactor []TimeSeries
	maxSeries   int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	refreshInterval time.Duration
	now             func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxSeries       int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxSeries:       96, // a day of 15-minute steps
		MaxEvents:       50,
		RefreshInterval: time.Minute,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	def := DefaultConfig()
	if cfg.MaxSeries <= 0 {
		cfg.MaxSeries = def.MaxSeries
	}
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = def.MaxEvents
	}
	return &Manager{
		maxSeries:       cfg.MaxSeries,
		maxEvents:       cfg.MaxEvents,
		events:          make([]Event, 0, cfg.MaxEvents),
		refreshInterval: cfg.RefreshInterval,
		now:             time.Now,
	}
}

// Render implements lighting.Renderer by storing the frame.
func (m *Manager) Render(f lighting.Frame) error {
	m.Update(&f, 0, nil)
	return nil
}

// Update records a composition result. A nil frame keeps the previous frame
// and only records err.
func (m *Manager) Update(frame *lighting.Frame, composeDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = m.now()
	m.lastError = err
	m.composeDuration = composeDuration

	if frame == nil {
		if errors.Is(err, lighting.ErrNoLightingState) && !m.lost {
			m.lost = true
			m.addEvent(Event{Type: EventStateLost, Timestamp: m.lastUpdate, Detail: err.Error()})
		}
		return
	}

	m.detectEvents(frame)
	m.lost = false
	m.current = frame

	m.intensity = m.appendSeries(m.intensity, TimeSeries{Timestamp: frame.Time, Value: frame.Light.Intensity})
	m.nightFactor = m.appendSeries(m.nightFactor, TimeSeries{Timestamp: frame.Time, Value: frame.Night.Factor})
}

func (m *Manager) appendSeries(s []TimeSeries, p TimeSeries) []TimeSeries {
	s = append(s, p)
	if len(s) > m.maxSeries {
		s = s[1:]
	}
	return s
}

// detectEvents compares a new frame with the previous one.
func (m *Manager) detectEvents(frame *lighting.Frame) {
	now := m.lastUpdate

	if m.lost {
		m.addEvent(Event{
			Type:      EventStateRestored,
			Timestamp: now,
			Moment:    frame.Time,
			NewPhase:  DominantPhase(frame.Blend),
			Location:  frame.Location.String(),
		})
	}

	prev := m.current
	if prev == nil {
		return
	}

	if prev.Location != frame.Location {
		m.addEvent(Event{
			Type:      EventLocationChange,
			Timestamp: now,
			Moment:    frame.Time,
			Location:  frame.Location.String(),
			Detail:    "from " + prev.Location.String(),
		})
	}

	oldPhase, newPhase := DominantPhase(prev.Blend), DominantPhase(frame.Blend)
	if oldPhase != newPhase {
		m.addEvent(Event{
			Type:      EventPhaseChange,
			Timestamp: now,
			Moment:    frame.Time,
			OldPhase:  oldPhase,
			NewPhase:  newPhase,
			Location:  frame.Location.String(),
		})
	}
}

// DominantPhase returns the phase whose look prevails in a blend.
func DominantPhase(b lighting.BlendResult) twilight.PhaseKey {
	if b.Raw < 0.5 {
		return b.PhaseA
	}
	return b.PhaseB
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Frame           *lighting.Frame
	LastUpdate      time.Time
	LastError       error
	ComposeDuration time.Duration
	Intensity       []TimeSeries
	NightFactor     []TimeSeries
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Frame:           m.current,
		LastUpdate:      m.lastUpdate,
		LastError:       m.lastError,
		ComposeDuration: m.composeDuration,
		Intensity:       append([]TimeSeries(nil), m.intensity...),
		NightFactor:     append([]TimeSeries(nil), m.nightFactor...),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events, oldest first.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// IntensityStats summarizes the recorded light intensities.
func (m *Manager) IntensityStats() SeriesStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return seriesStats(m.intensity)
}

func seriesStats(s []TimeSeries) SeriesStats {
	if len(s) == 0 {
		return SeriesStats{}
	}
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}
	return SeriesStats{
		Count:  len(values),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// HasData returns true once a frame has been stored.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

// Frame returns the last good frame, if any.
func (m *Manager) Frame() (lighting.Frame, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return lighting.Frame{}, false
	}
	return *m.current, true
}

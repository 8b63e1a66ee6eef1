package state

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/litescript/ls-skylight/internal/astro"
	"github.com/litescript/ls-skylight/internal/lighting"
	"github.com/litescript/ls-skylight/internal/twilight"
)

var base = time.Date(2024, 5, 10, 6, 0, 0, 0, time.UTC)

func testFrame(i int, a, b twilight.PhaseKey, raw, intensity float64) *lighting.Frame {
	return &lighting.Frame{
		Time:     base.Add(time.Duration(i) * 15 * time.Minute),
		Location: astro.GeoPoint{Lat: 10, Lon: 20},
		Blend:    lighting.BlendResult{PhaseA: a, PhaseB: b, Raw: raw},
		Light:    lighting.Light{Intensity: intensity},
		Night:    lighting.NightLights{Factor: lighting.NightFactor(intensity)},
	}
}

func TestNewManager(t *testing.T) {
	cfg := DefaultConfig()
	m := NewManager(cfg)

	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.RefreshInterval() != cfg.RefreshInterval {
		t.Errorf("RefreshInterval = %v, want %v", m.RefreshInterval(), cfg.RefreshInterval)
	}
	if m.HasData() {
		t.Error("HasData should be false initially")
	}
	if _, ok := m.Frame(); ok {
		t.Error("Frame() ok before any update")
	}
}

func TestManager_Update(t *testing.T) {
	m := NewManager(DefaultConfig())

	f := testFrame(0, twilight.Dawn, twilight.Sunrise, 0.2, 0.3)
	m.Update(f, 100*time.Millisecond, nil)

	if !m.HasData() {
		t.Error("HasData should be true after Update")
	}

	snap := m.Snapshot()
	if snap.Frame != f {
		t.Error("Snapshot Frame doesn't match")
	}
	if snap.ComposeDuration != 100*time.Millisecond {
		t.Errorf("ComposeDuration = %v, want 100ms", snap.ComposeDuration)
	}
	if snap.LastError != nil {
		t.Errorf("LastError = %v, want nil", snap.LastError)
	}
}

func TestManager_UpdateWithErrorKeepsFrame(t *testing.T) {
	m := NewManager(DefaultConfig())

	good := testFrame(0, twilight.Dawn, twilight.Sunrise, 0.2, 0.3)
	m.Update(good, 0, nil)

	testErr := fmt.Errorf("compose: %w", lighting.ErrNoLightingState)
	m.Update(nil, 0, testErr)

	snap := m.Snapshot()
	if snap.Frame != good {
		t.Error("failed update replaced the last good frame")
	}
	if !errors.Is(snap.LastError, lighting.ErrNoLightingState) {
		t.Errorf("LastError = %v", snap.LastError)
	}
}

func TestManager_Render(t *testing.T) {
	m := NewManager(DefaultConfig())
	var r lighting.Renderer = m

	if err := r.Render(*testFrame(3, twilight.Dawn, twilight.Sunrise, 0.6, 0.4)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	f, ok := m.Frame()
	if !ok || !f.Time.Equal(base.Add(45*time.Minute)) {
		t.Errorf("Frame() = %v, %v", f.Time, ok)
	}
}

func TestManager_SeriesBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSeries = 4
	m := NewManager(cfg)

	for i := 0; i < 5; i++ {
		m.Update(testFrame(i, twilight.Dawn, twilight.Sunrise, 0.1, float64(i)/10), 0, nil)
	}

	snap := m.Snapshot()
	if len(snap.Intensity) != 4 || snap.Intensity[0].Value != 0.1 {
		t.Errorf("intensity series = %v", snap.Intensity)
	}
	if len(snap.NightFactor) != 4 {
		t.Errorf("night series length = %d, want 4", len(snap.NightFactor))
	}
}

func TestManager_IntensityStats(t *testing.T) {
	m := NewManager(DefaultConfig())
	if got := m.IntensityStats(); got.Count != 0 {
		t.Errorf("empty stats = %+v", got)
	}

	m.Update(testFrame(0, twilight.Dawn, twilight.Sunrise, 0, 0.5), 0, nil)
	if got := m.IntensityStats(); got.Count != 1 || got.StdDev != 0 || got.Mean != 0.5 {
		t.Errorf("single stats = %+v", got)
	}

	for i, v := range []float64{0.2, 0.8} {
		m.Update(testFrame(i+1, twilight.Dawn, twilight.Sunrise, 0, v), 0, nil)
	}
	got := m.IntensityStats()
	if got.Count != 3 || math.Abs(got.Mean-0.5) > 1e-9 || got.Min != 0.2 || got.Max != 0.8 {
		t.Errorf("stats = %+v", got)
	}
	if math.Abs(got.StdDev-0.3) > 1e-9 {
		t.Errorf("StdDev = %v, want 0.3", got.StdDev)
	}
}

func TestManager_Snapshot_IsCopy(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.Update(testFrame(0, twilight.Dawn, twilight.Sunrise, 0.1, 0.3), 0, nil)

	snap := m.Snapshot()
	snap.Intensity[0].Value = 99

	if m.Snapshot().Intensity[0].Value == 99 {
		t.Error("Snapshot modification affected manager state")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())

	var wg sync.WaitGroup
	iterations := 100

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			m.Update(testFrame(i, twilight.Dawn, twilight.Sunrise, float64(i%10)/10, 0.5), time.Duration(i)*time.Millisecond, nil)
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Snapshot()
				_ = m.HasData()
				_ = m.RefreshInterval()
				_ = m.IntensityStats()
				_, _ = m.Frame()
			}
		}()
	}

	wg.Wait()
}

func TestManager_ZeroConfigUsesDefaults(t *testing.T) {
	m := NewManager(Config{RefreshInterval: 30 * time.Second})

	if m.RefreshInterval() != 30*time.Second {
		t.Errorf("RefreshInterval = %v, want 30s", m.RefreshInterval())
	}
	def := DefaultConfig()
	if m.maxSeries != def.MaxSeries || m.maxEvents != def.MaxEvents {
		t.Errorf("maxSeries = %d, maxEvents = %d, want %d, %d", m.maxSeries, m.maxEvents, def.MaxSeries, def.MaxEvents)
	}
}

func TestManager_EventDetection_PhaseChange(t *testing.T) {
	m := NewManager(DefaultConfig())

	m.Update(testFrame(0, twilight.Dawn, twilight.Sunrise, 0.3, 0.3), 0, nil)
	m.Update(testFrame(1, twilight.Dawn, twilight.Sunrise, 0.4, 0.3), 0, nil)
	if events := m.RecentEvents(10); len(events) != 0 {
		t.Fatalf("unexpected events: %+v", events)
	}

	m.Update(testFrame(2, twilight.Dawn, twilight.Sunrise, 0.7, 0.3), 0, nil)
	events := m.RecentEvents(10)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Type != EventPhaseChange || e.OldPhase != twilight.Dawn || e.NewPhase != twilight.Sunrise {
		t.Errorf("event = %+v", e)
	}
}

func TestManager_EventDetection_LocationChange(t *testing.T) {
	m := NewManager(DefaultConfig())

	m.Update(testFrame(0, twilight.Dawn, twilight.Sunrise, 0.3, 0.3), 0, nil)
	moved := testFrame(1, twilight.Dawn, twilight.Sunrise, 0.3, 0.3)
	moved.Location.Lat = 11
	m.Update(moved, 0, nil)

	events := m.RecentEvents(10)
	if len(events) != 1 || events[0].Type != EventLocationChange {
		t.Fatalf("events = %+v", events)
	}
}

func TestManager_EventDetection_LostAndRestored(t *testing.T) {
	m := NewManager(DefaultConfig())
	lost := fmt.Errorf("wrap: %w", lighting.ErrNoLightingState)

	m.Update(testFrame(0, twilight.Dawn, twilight.Sunrise, 0.3, 0.3), 0, nil)
	m.Update(nil, 0, lost)
	m.Update(nil, 0, lost)
	m.Update(nil, 0, errors.New("unrelated"))
	m.Update(testFrame(1, twilight.Dawn, twilight.Sunrise, 0.3, 0.3), 0, nil)

	events := m.RecentEvents(10)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}
	if events[0].Type != EventStateLost || events[1].Type != EventStateRestored {
		t.Errorf("event types = %s, %s", events[0].Type, events[1].Type)
	}
	if events[1].NewPhase != twilight.Dawn {
		t.Errorf("restored phase = %s, want dawn", events[1].NewPhase)
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 5
	m := NewManager(cfg)

	// Alternate the dominant phase so every update after the first emits an event.
	for i := 0; i < 10; i++ {
		raw := 0.2
		if i%2 == 1 {
			raw = 0.8
		}
		m.Update(testFrame(i, twilight.Dawn, twilight.Sunrise, raw, 0.3), 0, nil)
	}

	events := m.RecentEvents(100)
	if len(events) != 5 {
		t.Errorf("events count = %d, want 5 (max)", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Moment.Before(events[i-1].Moment) {
			t.Errorf("events not in chronological order at index %d", i)
		}
	}
	if last := m.RecentEvents(1); len(last) != 1 || !last[0].Moment.Equal(base.Add(9*15*time.Minute)) {
		t.Errorf("RecentEvents(1) = %+v", last)
	}
}

func TestDominantPhase(t *testing.T) {
	b := lighting.BlendResult{PhaseA: twilight.Sunset, PhaseB: twilight.Dusk}
	b.Raw = 0.49
	if DominantPhase(b) != twilight.Sunset {
		t.Error("raw < 0.5 should favour phase A")
	}
	b.Raw = 0.5
	if DominantPhase(b) != twilight.Dusk {
		t.Error("raw >= 0.5 should favour phase B")
	}
}

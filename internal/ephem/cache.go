package ephem

import (
	"math"
	"sync"
	"time"

	"github.com/litescript/ls-skylight/internal/astro"
	"github.com/litescript/ls-skylight/internal/twilight"
)

const (
	// DefaultEventCacheTTL is how long cached twilight events stay fresh.
	DefaultEventCacheTTL = 6 * time.Hour

	// maxCachedDays caps the cache before expired entries are swept.
	maxCachedDays = 4096
)

// CachedProvider memoizes TwilightEvents per solar date and exact normalized
// location, so a cached answer is always the one the wrapped provider gives
// for that key. Positions and illumination are passed straight through.
type CachedProvider struct {
	Provider

	ttl time.Duration
	now func() time.Time

	mu     sync.RWMutex
	events map[eventKey]*cachedEvents
}

type eventKey struct {
	year     int
	month    time.Month
	day      int
	lat, lon uint64 // float64 bits
}

// cachedEvents stores one day's events.
type cachedEvents struct {
	events    map[twilight.PhaseKey]time.Time
	fetchedAt time.Time
}

// NewCachedProvider wraps p with a twilight event cache. A non-positive ttl
// uses DefaultEventCacheTTL.
func NewCachedProvider(p Provider, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultEventCacheTTL
	}
	return &CachedProvider{
		Provider: p,
		ttl:      ttl,
		now:      time.Now,
		events:   make(map[eventKey]*cachedEvents),
	}
}

// Name implements Provider.
func (c *CachedProvider) Name() string {
	return c.Provider.Name() + "+cache"
}

// TwilightEvents implements Provider. The returned map is a copy.
func (c *CachedProvider) TwilightEvents(day time.Time, loc astro.GeoPoint) map[twilight.PhaseKey]time.Time {
	loc = loc.Normalized()
	key := newEventKey(day, loc)

	c.mu.RLock()
	cached, ok := c.events[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(cached.fetchedAt) < c.ttl {
		return copyEvents(cached.events)
	}

	events := c.Provider.TwilightEvents(day, loc)

	c.mu.Lock()
	if len(c.events) >= maxCachedDays {
		c.sweepLocked()
	}
	c.events[key] = &cachedEvents{events: copyEvents(events), fetchedAt: c.now()}
	c.mu.Unlock()

	return events
}

// sweepLocked drops expired entries, or everything if none had expired.
func (c *CachedProvider) sweepLocked() {
	now := c.now()
	before := len(c.events)
	for k, v := range c.events {
		if now.Sub(v.fetchedAt) >= c.ttl {
			delete(c.events, k)
		}
	}
	if len(c.events) == before {
		c.events = make(map[eventKey]*cachedEvents)
	}
}

func newEventKey(day time.Time, loc astro.GeoPoint) eventKey {
	y, m, d := SolarDate(day, loc.Lon)
	return eventKey{
		year:  y,
		month: m,
		day:   d,
		lat:   math.Float64bits(loc.Lat),
		lon:   math.Float64bits(loc.Lon),
	}
}

func copyEvents(in map[twilight.PhaseKey]time.Time) map[twilight.PhaseKey]time.Time {
	out := make(map[twilight.PhaseKey]time.Time, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

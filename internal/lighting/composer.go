// Package lighting composes blended twilight styles, the sun's light
// direction and night decorations into renderer frames.
package lighting

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/litescript/ls-skylight/internal/astro"
	"github.com/litescript/ls-skylight/internal/ephem"
	"github.com/litescript/ls-skylight/internal/logging"
	"github.com/litescript/ls-skylight/internal/style"
	"github.com/litescript/ls-skylight/internal/twilight"
)

// ErrNoLightingState is returned when the phase schedule cannot bracket a
// moment. Callers keep their previous visual state.
var ErrNoLightingState = errors.New("lighting: no lighting state available")

// Options controls frame composition.
type Options struct {
	ZoomEasing bool
	ZoomRules  []ZoomRule
	Night      NightConfig
}

// DefaultOptions enables zoom easing with the default rules.
func DefaultOptions() Options {
	return Options{
		ZoomEasing: true,
		ZoomRules:  DefaultZoomRules(),
		Night:      DefaultNightConfig(),
	}
}

// Composer turns a moment and location into a Frame.
type Composer struct {
	provider ephem.Provider
	presets  style.PresetSet
	enabled  []twilight.PhaseKey
	opts     Options
	log      *logging.Logger

	// warned is shared by composers derived with WithOptions.
	warned *atomic.Bool
}

// NewComposer creates a composer. Only phases with a preset take part in the
// schedule.
func NewComposer(provider ephem.Provider, presets style.PresetSet, opts Options, log *logging.Logger) *Composer {
	if log == nil {
		log = logging.Discard()
	}
	return &Composer{
		provider: provider,
		presets:  presets,
		enabled:  presets.Enabled(),
		opts:     opts,
		log:      log,
		warned:   new(atomic.Bool),
	}
}

// Options returns the composer's options.
func (c *Composer) Options() Options {
	return c.opts
}

// WithOptions returns a composer sharing the provider, presets and warn-once
// flag with new options. Re-apply the current moment to pick up the change.
func (c *Composer) WithOptions(opts Options) *Composer {
	n := NewComposer(c.provider, c.presets, opts, c.log)
	n.warned = c.warned
	return n
}

// Provider returns the ephemeris provider.
func (c *Composer) Provider() ephem.Provider {
	return c.provider
}

// Compute brackets t between two phase events, eases the progress and blends
// the two presets.
func (c *Composer) Compute(t time.Time, loc astro.GeoPoint) (BlendResult, error) {
	br, err := twilight.FindBracket(c.provider, t, loc, c.enabled)
	if err != nil {
		return BlendResult{}, fmt.Errorf("%w: %w", ErrNoLightingState, err)
	}

	pa, pb := c.presets[br.From.Key], c.presets[br.To.Key]
	eased := twilight.Ease(br.Fraction, pa.Transition, pb.Transition)

	return BlendResult{
		PhaseA:  br.From.Key,
		PhaseB:  br.To.Key,
		From:    br.From.Time,
		To:      br.To.Time,
		Raw:     br.Fraction,
		Eased:   eased,
		Blended: style.Blend(pa.Attributes, pb.Attributes, br.Fraction, eased),
	}, nil
}

// Compose builds the full frame for t at loc.
func (c *Composer) Compose(t time.Time, loc astro.GeoPoint) (Frame, error) {
	loc = loc.Normalized()

	res, err := c.Compute(t, loc)
	if err != nil {
		return Frame{}, err
	}

	subsolar := astro.SubsolarPoint(t)
	light := NewLight(subsolar, res.Blended)

	return Frame{
		Time:      t,
		Location:  loc,
		Blend:     res,
		Light:     light,
		Sky:       c.sky(res.Blended),
		Hillshade: hillshade(light, res.Blended),
		Sun: SunMarker{
			Position: subsolar,
			Fix:      c.provider.BodyPosition(t, loc, ephem.Sun),
		},
		Moon:  c.moon(t, loc),
		Night: ComputeNight(c.opts.Night, light.Intensity),
	}, nil
}

// Resolve is Compose for callers that surface the frame themselves. The
// first ErrNoLightingState is logged as a warning; later ones are silent.
func (c *Composer) Resolve(t time.Time, loc astro.GeoPoint) (Frame, error) {
	frame, err := c.Compose(t, loc)
	if errors.Is(err, ErrNoLightingState) && c.warned.CompareAndSwap(false, true) {
		c.log.Warnw("no lighting state available",
			"location", loc.String(),
			"time", t.UTC().Format(time.RFC3339),
			"enabled_phases", len(c.enabled),
			"error", err)
	}
	return frame, err
}

// Apply resolves a frame and hands it to r. When no lighting state exists r
// is left untouched.
func (c *Composer) Apply(r Renderer, t time.Time, loc astro.GeoPoint) (Frame, error) {
	frame, err := c.Resolve(t, loc)
	if err != nil {
		return Frame{}, err
	}

	if err := r.Render(frame); err != nil {
		return frame, fmt.Errorf("render frame: %w", err)
	}
	return frame, nil
}

func (c *Composer) sky(blended style.Attributes) map[string]SkyValue {
	sky := make(map[string]SkyValue, len(style.SkyAttributes))
	for _, key := range style.SkyAttributes {
		if v, ok := blended[key]; ok {
			sky[key] = SkyValue{Value: v}
		}
	}
	if !c.opts.ZoomEasing {
		return sky
	}

	for _, rule := range c.opts.ZoomRules {
		v, ok := sky[rule.Attribute]
		if !ok || !v.Value.IsScalar() {
			continue
		}
		v.Curve = rule.Curve(v.Value.Scalar)
		sky[rule.Attribute] = v
	}
	return sky
}

func (c *Composer) moon(t time.Time, loc astro.GeoPoint) MoonMarker {
	illum := c.provider.MoonIllumination(t)
	return MoonMarker{
		Position:     astro.SublunarPoint(t, illum.Phase),
		Fix:          c.provider.BodyPosition(t, loc, ephem.Moon),
		Phase:        illum.Phase,
		PhasePercent: astro.MoonPhasePercent(illum.Phase),
		Fraction:     illum.Fraction,
		Label:        astro.MoonPhaseLabel(illum.Phase),
		Glyph:        astro.MoonPhaseGlyph(illum.Phase),
	}
}

func hillshade(light Light, blended style.Attributes) Hillshade {
	h := Hillshade{IlluminationDirection: light.AzimuthDeg}
	if c, ok := blended.Color(style.HillshadeHighlight); ok {
		h.Highlight = &c
	}
	if c, ok := blended.Color(style.HillshadeShadow); ok {
		h.Shadow = &c
	}
	return h
}

package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/litescript/ls-skylight/internal/twilight"
)

func TestDefaultPresets(t *testing.T) {
	presets := DefaultPresets()
	if len(presets) != len(twilight.Phases) {
		t.Fatalf("len(DefaultPresets()) = %d, want %d", len(presets), len(twilight.Phases))
	}

	wantTransitions := map[twilight.PhaseKey]twilight.Character{
		twilight.SolarNoon:     twilight.Stable,
		twilight.Night:         twilight.Stable,
		twilight.Nadir:         twilight.Stable,
		twilight.Sunrise:       twilight.Fast,
		twilight.SunriseEnd:    twilight.Fast,
		twilight.GoldenHour:    twilight.Fast,
		twilight.SunsetStart:   twilight.Fast,
		twilight.Sunset:        twilight.Fast,
		twilight.Dawn:          twilight.Fast,
		twilight.GoldenHourEnd: twilight.Normal,
		twilight.Dusk:          twilight.Normal,
		twilight.NauticalDusk:  twilight.Normal,
		twilight.NightEnd:      twilight.Normal,
		twilight.NauticalDawn:  twilight.Normal,
	}

	for key, p := range presets {
		if p.Transition != wantTransitions[key] {
			t.Errorf("%s transition = %v, want %v", key, p.Transition, wantTransitions[key])
		}
		for _, name := range ColorAttributes {
			if _, ok := p.Attributes.Color(name); !ok {
				t.Errorf("%s missing color %s", key, name)
			}
		}
		for _, name := range ScalarAttributes {
			v, ok := p.Attributes.Scalar(name)
			if !ok {
				t.Errorf("%s missing scalar %s", key, name)
			}
			if v < 0 || v > 1 {
				t.Errorf("%s %s = %v, outside [0, 1]", key, name, v)
			}
		}
	}

	if _, ok := presets[twilight.SolarNoon].Attributes[AtmosphereBlend]; !ok {
		t.Error("solarNoon should carry an atmosphere-blend expression")
	}
}

func TestDefaultPresets_FreshCopy(t *testing.T) {
	a := DefaultPresets()
	a[twilight.Night].Attributes[SkyColor] = ColorValue(Color{1, 2, 3})
	delete(a, twilight.Dusk)

	b := DefaultPresets()
	if c, _ := b[twilight.Night].Attributes.Color(SkyColor); c != (Color{}) {
		t.Errorf("night sky-color = %v, want #000000", c)
	}
	if _, ok := b[twilight.Dusk]; !ok {
		t.Error("dusk missing from fresh defaults")
	}
}

func TestPresetSetEnabled(t *testing.T) {
	set := PresetSet{
		twilight.Night:     {},
		twilight.Sunrise:   {},
		twilight.SolarNoon: {},
	}
	want := []twilight.PhaseKey{twilight.Sunrise, twilight.SolarNoon, twilight.Night}
	if diff := cmp.Diff(want, set.Enabled()); diff != "" {
		t.Errorf("Enabled() mismatch (-want +got):\n%s", diff)
	}
	if got := DefaultPresets().Enabled(); len(got) != 14 {
		t.Errorf("len(Enabled()) = %d, want 14", len(got))
	}
}

func TestAttributesKeys(t *testing.T) {
	a := Attributes{FogColor: {}, SkyColor: {}, AtmosphereBlend: {}}
	want := []string{AtmosphereBlend, FogColor, SkyColor}
	if diff := cmp.Diff(want, a.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

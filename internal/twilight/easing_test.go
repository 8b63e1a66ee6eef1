package twilight

import (
	"math"
	"testing"
)

var allCharacters = []Character{Normal, Stable, Fast}

func TestEase(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		a, b Character
		want float64
	}{
		{"stable pair holds early", 0.2, Stable, Stable, 0},
		{"stable pair midpoint", 0.5, Stable, Stable, 0.5},
		{"stable pair ramp", 0.4, Stable, Stable, 0.25},
		{"stable pair holds late", 0.8, Stable, Stable, 1},
		{"leaving stable starts late", 0.5, Stable, Normal, 0},
		{"leaving stable ramps", 0.8, Stable, Fast, 0.5},
		{"entering stable finishes early", 0.2, Normal, Stable, 0.5},
		{"entering stable holds", 0.6, Fast, Stable, 1},
		{"fast ease-in", 0.25, Fast, Normal, 0.125},
		{"fast midpoint", 0.5, Normal, Fast, 0.5},
		{"fast ease-out", 0.75, Fast, Fast, 0.875},
		{"normal identity", 0.37, Normal, Normal, 0.37},
		{"raw above one is clamped", 1.4, Normal, Normal, 1},
		{"raw below zero is clamped", -0.2, Fast, Normal, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ease(tt.raw, tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Ease(%v, %v, %v) = %v, want %v", tt.raw, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEase_Boundaries(t *testing.T) {
	for _, a := range allCharacters {
		for _, b := range allCharacters {
			if got := Ease(0, a, b); got != 0 {
				t.Errorf("Ease(0, %v, %v) = %v, want 0", a, b, got)
			}
			if got := Ease(1, a, b); math.Abs(got-1) > 1e-12 {
				t.Errorf("Ease(1, %v, %v) = %v, want 1", a, b, got)
			}
		}
	}
}

func TestEase_BoundedAndMonotonic(t *testing.T) {
	for _, a := range allCharacters {
		for _, b := range allCharacters {
			prev := 0.0
			for i := 0; i <= 1000; i++ {
				raw := float64(i) / 1000
				got := Ease(raw, a, b)
				if got < 0 || got > 1 {
					t.Fatalf("Ease(%v, %v, %v) = %v, outside [0, 1]", raw, a, b, got)
				}
				if got < prev-1e-12 {
					t.Fatalf("Ease not monotonic for %v/%v at %v: %v < %v", a, b, raw, got, prev)
				}
				prev = got
			}
		}
	}
}

func TestParseCharacter(t *testing.T) {
	tests := []struct {
		in      string
		want    Character
		wantErr bool
	}{
		{"", Normal, false},
		{"normal", Normal, false},
		{"stable", Stable, false},
		{"fast", Fast, false},
		{"sluggish", Normal, true},
	}

	for _, tt := range tests {
		got, err := ParseCharacter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCharacter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseCharacter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCharacterString(t *testing.T) {
	for _, c := range allCharacters {
		parsed, err := ParseCharacter(c.String())
		if err != nil || parsed != c {
			t.Errorf("round trip of %v gave %v, %v", c, parsed, err)
		}
	}
}

package style

import (
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#f7dc6f", Color{0xf7, 0xdc, 0x6f}, false},
		{"#88C6FC", Color{0x88, 0xc6, 0xfc}, false},
		{"ffffff", Color{255, 255, 255}, false},
		{"#f0c", Color{0xff, 0x00, 0xcc}, false},
		{"#000", Color{0, 0, 0}, false},
		{"#12345", Color{}, true},
		{"#gggggg", Color{}, true},
		{"", Color{}, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorHex(t *testing.T) {
	for _, s := range []string{"#000000", "#ffffff", "#199ef3", "#5b2c6f", "#0d0720"} {
		c := MustParseColor(s)
		if got := c.Hex(); got != s {
			t.Errorf("Hex() = %q, want %q", got, s)
		}
	}
}

func TestColorLerp(t *testing.T) {
	black := Color{0, 0, 0}
	white := Color{255, 255, 255}

	tests := []struct {
		name string
		a, b Color
		t    float64
		want Color
	}{
		{"start", black, white, 0, black},
		{"end", black, white, 1, white},
		{"midpoint rounds half up", black, white, 0.5, Color{128, 128, 128}},
		{"per channel", Color{10, 200, 0}, Color{20, 100, 255}, 0.25, Color{13, 175, 64}},
		{"overshoot clamps", black, white, 1.5, white},
		{"undershoot clamps", Color{10, 10, 10}, white, -1, black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Lerp(tt.b, tt.t); got != tt.want {
				t.Errorf("Lerp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorLerp_SelfIsStable(t *testing.T) {
	for _, p := range DefaultPresets() {
		for _, k := range ColorAttributes {
			c, ok := p.Attributes.Color(k)
			if !ok {
				continue
			}
			for i := 0; i <= 20; i++ {
				f := float64(i) / 20
				if got := c.Lerp(c, f); got != c {
					t.Fatalf("%v.Lerp(self, %v) = %v", c, f, got)
				}
			}
		}
	}
}

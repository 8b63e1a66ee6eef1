package twilight

import "fmt"

// Character describes how quickly the look of a phase should change when
// transitioning into or out of it.
type Character int

const (
	Normal Character = iota
	Stable
	Fast
)

// String returns the string representation of the character.
func (c Character) String() string {
	switch c {
	case Stable:
		return "stable"
	case Fast:
		return "fast"
	default:
		return "normal"
	}
}

// ParseCharacter converts a string to a Character. The empty string is Normal.
func ParseCharacter(s string) (Character, error) {
	switch s {
	case "", "normal":
		return Normal, nil
	case "stable":
		return Stable, nil
	case "fast":
		return Fast, nil
	default:
		return Normal, fmt.Errorf("twilight: unknown transition type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Character) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Character) UnmarshalText(b []byte) error {
	parsed, err := ParseCharacter(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Ease reshapes a raw bracket fraction according to the characters of the
// phase being left (a) and the phase being entered (b).
//
//   - stable to stable: hold, ramp over [0.3, 0.7], hold
//   - leaving stable: hold until 0.6, then ramp
//   - entering stable: ramp over [0, 0.4], then hold
//   - any fast side: quadratic ease-in-out
//   - normal to normal: identity
func Ease(raw float64, a, b Character) float64 {
	t := clamp01(raw)
	switch {
	case a == Stable && b == Stable:
		if t < 0.3 {
			return 0
		}
		if t > 0.7 {
			return 1
		}
		return (t - 0.3) / 0.4
	case a == Stable:
		if t < 0.6 {
			return 0
		}
		return (t - 0.6) / 0.4
	case b == Stable:
		if t < 0.4 {
			return t / 0.4
		}
		return 1
	case a == Fast || b == Fast:
		if t < 0.5 {
			return 2 * t * t
		}
		u := -2*t + 2
		return 1 - u*u/2
	default:
		return t
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

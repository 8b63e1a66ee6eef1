package style

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind discriminates the contents of a Value.
type Kind int

const (
	KindRaw Kind = iota
	KindColor
	KindScalar
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindScalar:
		return "scalar"
	default:
		return "raw"
	}
}

// Value is a single preset attribute: a color, a scalar, or an opaque
// structured value (e.g. a renderer expression) that cannot be interpolated.
type Value struct {
	Kind   Kind
	Color  Color
	Scalar float64
	Raw    any
}

// ColorValue wraps a color.
func ColorValue(c Color) Value { return Value{Kind: KindColor, Color: c} }

// ScalarValue wraps a number.
func ScalarValue(f float64) Value { return Value{Kind: KindScalar, Scalar: f} }

// RawValue wraps an opaque value.
func RawValue(v any) Value { return Value{Kind: KindRaw, Raw: v} }

// IsColor reports whether v holds a color.
func (v Value) IsColor() bool { return v.Kind == KindColor }

// IsScalar reports whether v holds a number.
func (v Value) IsScalar() bool { return v.Kind == KindScalar }

// String formats the value for display.
func (v Value) String() string {
	switch v.Kind {
	case KindColor:
		return v.Color.Hex()
	case KindScalar:
		return fmt.Sprintf("%.3g", v.Scalar)
	default:
		b, err := json.Marshal(v.Raw)
		if err != nil {
			return fmt.Sprint(v.Raw)
		}
		return string(b)
	}
}

// MarshalJSON encodes colors as hex strings, scalars as numbers, and raw
// values as themselves.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindColor:
		return json.Marshal(v.Color.Hex())
	case KindScalar:
		return json.Marshal(v.Scalar)
	default:
		return json.Marshal(v.Raw)
	}
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (v *Value) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := valueFromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// valueFromAny classifies a decoded YAML/JSON value. Strings starting with
// '#' must be valid colors; numbers become scalars; anything else is raw.
func valueFromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case string:
		if strings.HasPrefix(strings.TrimSpace(x), "#") {
			c, err := ParseColor(x)
			if err != nil {
				return Value{}, err
			}
			return ColorValue(c), nil
		}
		return RawValue(x), nil
	case float64:
		return ScalarValue(x), nil
	case float32:
		return ScalarValue(float64(x)), nil
	case int:
		return ScalarValue(float64(x)), nil
	case int64:
		return ScalarValue(float64(x)), nil
	case uint64:
		return ScalarValue(float64(x)), nil
	default:
		return RawValue(x), nil
	}
}

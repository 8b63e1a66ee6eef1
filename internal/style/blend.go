package style

// Blend mixes two attribute sets. Color and scalar attributes are
// interpolated by eased; an attribute defined on only one side passes through
// unchanged. Every other attribute (and any listed attribute whose sides are
// not both of the expected kind) takes a's value while raw < 0.5 and b's
// value afterwards, falling back to whichever side defines it.
//
// The result holds exactly the union of both key sets.
func Blend(a, b Attributes, raw, eased float64) Attributes {
	out := make(Attributes, len(a)+len(b))

	for _, k := range ColorAttributes {
		va, okA := a[k]
		vb, okB := b[k]
		switch {
		case okA && okB:
			if va.IsColor() && vb.IsColor() {
				out[k] = ColorValue(va.Color.Lerp(vb.Color, eased))
			}
		case okA:
			out[k] = va
		case okB:
			out[k] = vb
		}
	}

	for _, k := range ScalarAttributes {
		va, okA := a[k]
		vb, okB := b[k]
		switch {
		case okA && okB:
			if va.IsScalar() && vb.IsScalar() {
				out[k] = ScalarValue(lerp(va.Scalar, vb.Scalar, eased))
			}
		case okA:
			out[k] = va
		case okB:
			out[k] = vb
		}
	}

	prefer, other := a, b
	if raw >= 0.5 {
		prefer, other = b, a
	}
	for _, side := range []Attributes{a, b} {
		for k := range side {
			if _, done := out[k]; done {
				continue
			}
			if v, ok := prefer[k]; ok {
				out[k] = v
			} else {
				out[k] = other[k]
			}
		}
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

package astro

import "math"

// Vec3 is a vector in the observer's local east-north-up frame.
type Vec3 struct {
	X float64 `json:"east"`
	Y float64 `json:"north"`
	Z float64 `json:"up"`
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction. The zero vector
// stays zero.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// SphericalToCartesian converts a radial distance, an azimuth (clockwise from
// north) and a polar angle (from zenith) into a local east-north-up vector.
func SphericalToCartesian(r, azimuthDeg, polarDeg float64) Vec3 {
	az := degToRad(azimuthDeg)
	polar := degToRad(polarDeg)
	return Vec3{
		X: r * math.Sin(polar) * math.Sin(az),
		Y: r * math.Sin(polar) * math.Cos(az),
		Z: r * math.Cos(polar),
	}
}

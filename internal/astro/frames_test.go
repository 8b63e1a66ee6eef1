package astro

import (
	"math"
	"testing"
)

func near(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestVec3Norm(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{0, 0, 0}, 0},
		{"up", Vec3{0, 0, 1}, 1},
		{"3-4-5", Vec3{3, 4, 0}, 5},
		{"negative", Vec3{-3, -4, 0}, 5},
		{"3D", Vec3{1, 2, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Norm(); math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Normalized(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want Vec3
	}{
		{"east", Vec3{5, 0, 0}, Vec3{1, 0, 0}},
		{"diagonal", Vec3{1, 1, 0}, Vec3{1 / math.Sqrt(2), 1 / math.Sqrt(2), 0}},
		{"zero", Vec3{0, 0, 0}, Vec3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Normalized(); !near(got, tt.want, 1e-10) {
				t.Errorf("Normalized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSphericalToCartesian(t *testing.T) {
	tests := []struct {
		name  string
		r     float64
		az    float64
		polar float64
		want  Vec3
	}{
		{"zenith", 1.5, 0, 0, Vec3{0, 0, 1.5}},
		{"north horizon", 1, 0, 90, Vec3{0, 1, 0}},
		{"east horizon", 1, 90, 90, Vec3{1, 0, 0}},
		{"south horizon", 1, 180, 90, Vec3{0, -1, 0}},
		{"nadir", 2, 45, 180, Vec3{0, 0, -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SphericalToCartesian(tt.r, tt.az, tt.polar)
			if !near(got, tt.want, 1e-9) {
				t.Errorf("SphericalToCartesian(%v, %v, %v) = %v, want %v", tt.r, tt.az, tt.polar, got, tt.want)
			}
		})
	}
}

package astro

import (
	"math"
	"testing"
)

func TestNormalizeLongitude(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{179.5, 179.5},
		{-179.5, -179.5},
		{190, -170},
		{-190, 170},
		{360, 0},
		{540, 180},
		{-540, 180},
		{720.25, 0.25},
		{-1e-13, -1e-13},
	}

	for _, tt := range tests {
		got := NormalizeLongitude(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeLongitude(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got <= -180 || got > 180 {
			t.Errorf("NormalizeLongitude(%v) = %v, outside (-180, 180]", tt.in, got)
		}
	}
}

func TestGeoPointNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   GeoPoint
		want GeoPoint
	}{
		{"in range", GeoPoint{Lat: 36.26, Lon: 137.92}, GeoPoint{Lat: 36.26, Lon: 137.92}},
		{"latitude clamped north", GeoPoint{Lat: 95, Lon: 0}, GeoPoint{Lat: 90, Lon: 0}},
		{"latitude clamped south", GeoPoint{Lat: -120, Lon: 10}, GeoPoint{Lat: -90, Lon: 10}},
		{"longitude wrapped", GeoPoint{Lat: 10, Lon: 370}, GeoPoint{Lat: 10, Lon: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			if math.Abs(got.Lat-tt.want.Lat) > 1e-9 || math.Abs(got.Lon-tt.want.Lon) > 1e-9 {
				t.Errorf("Normalized() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTrigLatitude(t *testing.T) {
	if got := TrigLatitude(89); got != TrigLatitudeLimit {
		t.Errorf("TrigLatitude(89) = %v, want %v", got, TrigLatitudeLimit)
	}
	if got := TrigLatitude(-90); got != -TrigLatitudeLimit {
		t.Errorf("TrigLatitude(-90) = %v, want %v", got, -TrigLatitudeLimit)
	}
	if got := TrigLatitude(42); got != 42 {
		t.Errorf("TrigLatitude(42) = %v, want 42", got)
	}
}

func TestGeoPointString(t *testing.T) {
	tests := []struct {
		p    GeoPoint
		want string
	}{
		{GeoPoint{Lat: 36.2596, Lon: 137.9151}, "36.26°N 137.92°E"},
		{GeoPoint{Lat: -33.87, Lon: -70.5}, "33.87°S 70.50°W"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

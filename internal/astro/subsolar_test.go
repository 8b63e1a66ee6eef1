package astro

import (
	"math"
	"testing"
	"time"
)

func TestSubsolarPoint(t *testing.T) {
	tests := []struct {
		name       string
		time       time.Time
		wantLatMin float64
		wantLatMax float64
		wantLonMin float64
		wantLonMax float64
	}{
		{
			name:       "March equinox noon UTC is near Greenwich on the equator",
			time:       time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
			wantLatMin: -1, wantLatMax: 1,
			wantLonMin: -1, wantLonMax: 5,
		},
		{
			name:       "June solstice sits on the Tropic of Cancer",
			time:       time.Date(2024, 6, 20, 20, 51, 0, 0, time.UTC),
			wantLatMin: 23, wantLatMax: 23.6,
			wantLonMin: -137, wantLonMax: -131,
		},
		{
			name:       "December solstice midnight UTC near the antimeridian",
			time:       time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC),
			wantLatMin: -23.6, wantLatMax: -23,
			wantLonMin: 175, wantLonMax: 180,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubsolarPoint(tt.time)
			if got.Lat < tt.wantLatMin || got.Lat > tt.wantLatMax {
				t.Errorf("Lat = %.3f, want [%v, %v]", got.Lat, tt.wantLatMin, tt.wantLatMax)
			}
			if got.Lon < tt.wantLonMin || got.Lon > tt.wantLonMax {
				t.Errorf("Lon = %.3f, want [%v, %v]", got.Lon, tt.wantLonMin, tt.wantLonMax)
			}
		})
	}
}

func TestSubsolarPoint_Ranges(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 24*400; i += 7 {
		got := SubsolarPoint(start.Add(time.Duration(i) * time.Hour))
		if got.Lon <= -180 || got.Lon > 180 {
			t.Fatalf("Lon = %v outside (-180, 180]", got.Lon)
		}
		if got.Lat < -90 || got.Lat > 90 {
			t.Fatalf("Lat = %v outside [-90, 90]", got.Lat)
		}
	}
}

func TestSubsolarPoint_Deterministic(t *testing.T) {
	when := time.Date(2025, 8, 14, 5, 33, 12, 0, time.UTC)
	a := SubsolarPoint(when)
	b := SubsolarPoint(when.In(time.FixedZone("X", -7*3600)))
	if a != b {
		t.Errorf("SubsolarPoint differs for the same instant: %+v vs %+v", a, b)
	}
}

func TestSublunarPoint(t *testing.T) {
	tests := []struct {
		name  string
		time  time.Time
		phase float64
		want  GeoPoint
	}{
		{
			name:  "new moon at noon UTC on day 81",
			time:  time.Date(2023, 3, 22, 12, 0, 0, 0, time.UTC),
			phase: 0,
			want:  GeoPoint{Lat: 0, Lon: 0},
		},
		{
			name:  "first quarter at midnight UTC on day 81",
			time:  time.Date(2023, 3, 22, 0, 0, 0, 0, time.UTC),
			phase: 0.25,
			want:  GeoPoint{Lat: 5, Lon: -90},
		},
		{
			name:  "full moon at 06:00 UTC on day 81",
			time:  time.Date(2023, 3, 22, 6, 0, 0, 0, time.UTC),
			phase: 0.5,
			want:  GeoPoint{Lat: 0, Lon: -90},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SublunarPoint(tt.time, tt.phase)
			if math.Abs(got.Lat-tt.want.Lat) > 1e-9 || math.Abs(got.Lon-tt.want.Lon) > 1e-9 {
				t.Errorf("SublunarPoint() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSublunarPoint_Ranges(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24*366; h += 5 {
		for _, phase := range []float64{0, 0.13, 0.5, 0.87, 0.999} {
			got := SublunarPoint(start.Add(time.Duration(h)*time.Hour), phase)
			if got.Lon <= -180 || got.Lon > 180 {
				t.Fatalf("Lon = %v outside (-180, 180]", got.Lon)
			}
			if got.Lat < -90 || got.Lat > 90 {
				t.Fatalf("Lat = %v outside [-90, 90]", got.Lat)
			}
		}
	}
}

func TestSolarNoon(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		lon  float64
	}{
		{"Greenwich", time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC), 0},
		{"Nagano", time.Date(2024, 7, 1, 3, 0, 0, 0, time.UTC), 137.9151},
		{"Honolulu", time.Date(2024, 11, 3, 22, 0, 0, 0, time.UTC), -157.86},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noon := SolarNoon(tt.from, tt.lon)
			if diff := math.Abs(NormalizeLongitude(SubsolarPoint(noon).Lon - tt.lon)); diff > 0.01 {
				t.Errorf("subsolar longitude at noon off by %v°", diff)
			}
			if d := noon.Sub(tt.from).Abs(); d > 12*time.Hour {
				t.Errorf("noon %v is %v from start, want nearest transit", noon, d)
			}

			midnight := SolarMidnight(noon.Add(-12*time.Hour), tt.lon)
			if d := noon.Sub(midnight); d < 11*time.Hour+50*time.Minute || d > 12*time.Hour+10*time.Minute {
				t.Errorf("midnight precedes noon by %v, want about 12h", d)
			}
		})
	}
}

package astro

import (
	"math"
	"testing"
	"time"
)

func TestEquatorialToHorizontal(t *testing.T) {
	when := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)
	loc := GeoPoint{Lat: 40, Lon: -75}
	lst := normalizeAngle360(SiderealTime(DaysSinceEpoch(when)) + loc.Lon)

	tests := []struct {
		name   string
		eq     SkyCoord
		wantEl float64
		wantAz float64 // negative skips the azimuth check
	}{
		{
			name:   "on meridian at zenith",
			eq:     SkyCoord{RAdeg: lst, DecDeg: 40},
			wantEl: 90,
			wantAz: -1,
		},
		{
			name:   "on meridian south of zenith",
			eq:     SkyCoord{RAdeg: lst, DecDeg: 10},
			wantEl: 60,
			wantAz: 180,
		},
		{
			name:   "celestial pole sits at observer latitude",
			eq:     SkyCoord{RAdeg: 0, DecDeg: 90},
			wantEl: 40,
			wantAz: 0,
		},
		{
			name:   "six hours east of meridian on equator rises due east",
			eq:     SkyCoord{RAdeg: normalizeAngle360(lst + 90), DecDeg: 0},
			wantEl: 0,
			wantAz: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EquatorialToHorizontal(tt.eq, loc, when)
			if math.Abs(got.ElDeg-tt.wantEl) > 1e-5 {
				t.Errorf("ElDeg = %v, want %v", got.ElDeg, tt.wantEl)
			}
			if tt.wantAz >= 0 {
				diff := math.Abs(got.AzDeg - tt.wantAz)
				if diff > 180 {
					diff = 360 - diff
				}
				if diff > 1e-4 {
					t.Errorf("AzDeg = %v, want %v", got.AzDeg, tt.wantAz)
				}
			}
			if got.RAdeg != tt.eq.RAdeg || got.DecDeg != tt.eq.DecDeg {
				t.Errorf("equatorial coordinates not preserved: %+v", got)
			}
		})
	}
}

func TestHorizontalFromSidereal_AzimuthRange(t *testing.T) {
	locs := []GeoPoint{{Lat: 0, Lon: 0}, {Lat: 89.9, Lon: 10}, {Lat: -90, Lon: 200}, {Lat: 51.5, Lon: -0.1}}
	for _, loc := range locs {
		for gst := 0.0; gst < 360; gst += 17 {
			for dec := -80.0; dec <= 80; dec += 20 {
				got := HorizontalFromSidereal(SkyCoord{RAdeg: 45, DecDeg: dec}, loc, gst)
				if math.IsNaN(got.AzDeg) || math.IsNaN(got.ElDeg) {
					t.Fatalf("NaN for loc=%v gst=%v dec=%v: %+v", loc, gst, dec, got)
				}
				if got.AzDeg < 0 || got.AzDeg >= 360 {
					t.Fatalf("AzDeg = %v outside [0, 360)", got.AzDeg)
				}
				if got.ElDeg < -90 || got.ElDeg > 90 {
					t.Fatalf("ElDeg = %v outside [-90, 90]", got.ElDeg)
				}
			}
		}
	}
}

func TestEclipticToEquatorial(t *testing.T) {
	ra, dec := EclipticToEquatorial(90, 0)
	if math.Abs(ra-90) > 1e-9 || math.Abs(dec-23.4397) > 1e-9 {
		t.Errorf("EclipticToEquatorial(90, 0) = (%v, %v), want (90, 23.4397)", ra, dec)
	}
	ra, dec = EclipticToEquatorial(0, 90)
	if math.Abs(dec-(90-23.4397)) > 1e-9 {
		t.Errorf("EclipticToEquatorial(0, 90) dec = %v, want %v (ra %v)", dec, 90-23.4397, ra)
	}
}

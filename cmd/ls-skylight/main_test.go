package main

import (
	"testing"
	"time"
)

func TestResolveMoment(t *testing.T) {
	now := time.Date(2024, 6, 21, 15, 30, 45, 0, time.UTC)

	tests := []struct {
		name       string
		at         string
		doy        int
		minutes    int
		lon        float64
		want       time.Time
		wantPinned bool
		wantErr    bool
	}{
		{"live", "", 0, -1, 0, now, false, false},
		{"at", "2024-01-02T03:04:05Z", 0, -1, 0, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), true, false},
		{"at with offset", "2024-01-02T03:04:05+02:00", 0, -1, 0, time.Date(2024, 1, 2, 1, 4, 5, 0, time.UTC), true, false},
		{"minutes at greenwich", "", 0, 360, 0, time.Date(2024, 6, 21, 6, 0, 0, 0, time.UTC), true, false},
		{"minutes east", "", 0, 720, 90, time.Date(2024, 6, 21, 6, 0, 0, 0, time.UTC), true, false},
		{"doy keeps minutes", "", 1, -1, 0, time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC), true, false},
		{"doy and minutes", "", 32, 0, 0, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), true, false},
		{"bad at", "yesterday", 0, -1, 0, time.Time{}, false, true},
		{"bad doy", "", 400, -1, 0, time.Time{}, false, true},
		{"bad minutes", "", 0, 1440, 0, time.Time{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, pinned, err := resolveMoment(now, tt.at, tt.doy, tt.minutes, tt.lon)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("moment = %v, want %v", got, tt.want)
			}
			if pinned != tt.wantPinned {
				t.Errorf("pinned = %v, want %v", pinned, tt.wantPinned)
			}
		})
	}
}

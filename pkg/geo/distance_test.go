package geo

import (
	"math"
	"testing"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantMiles              float64
		tolerance              float64
	}{
		{
			name: "same point",
			lat1: 30.2672, lng1: -97.7431,
			lat2: 30.2672, lng2: -97.7431,
			wantMiles: 0, tolerance: 0.001,
		},
		{
			name: "austin downtown to ut campus",
			lat1: 30.2672, lng1: -97.7431,
			lat2: 30.2849, lng2: -97.7341,
			wantMiles: 1.33, tolerance: 0.1,
		},
		{
			name: "austin to dallas",
			lat1: 30.2672, lng1: -97.7431,
			lat2: 32.7767, lng2: -96.7970,
			wantMiles: 182, tolerance: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantMiles) > tt.tolerance {
				t.Errorf("Haversine() = %.3f mi, want %.3f +/- %.3f", got, tt.wantMiles, tt.tolerance)
			}
		})
	}
}

func TestEstimateTravelMinutes(t *testing.T) {
	tests := []struct {
		name  string
		miles float64
		mode  TravelMode
		want  int
	}{
		{"one mile walking", 1, ModeWalk, 20},
		{"one mile driving", 1, ModeDrive, 2},
		{"three miles transit", 3, ModeTransit, 10},
		{"zero distance", 0, ModeWalk, 0},
		{"negative distance", -2, ModeDrive, 0},
		{"tiny distance floors at one minute", 0.01, ModeDrive, 1},
		{"unknown mode falls back to driving", 28, TravelMode("hoverboard"), 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTravelMinutes(tt.miles, tt.mode); got != tt.want {
				t.Errorf("EstimateTravelMinutes(%v, %q) = %d, want %d", tt.miles, tt.mode, got, tt.want)
			}
		})
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(0.42); got != "0.4 mi" {
		t.Errorf("FormatDistance(0.42) = %q, want %q", got, "0.4 mi")
	}
	if got := FormatDistance(12.34); got != "12.3 mi" {
		t.Errorf("FormatDistance(12.34) = %q, want %q", got, "12.3 mi")
	}
}

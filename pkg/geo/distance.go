// Package geo provides the pure geometry helpers used by the retrieval
// branches that rank results by proximity (attractions, transit, commute).
package geo

import (
	"fmt"
	"math"
)

const earthRadiusMiles = 3958.8

// Average speeds in miles per hour used for rough travel-time estimates.
const (
	speedWalk    = 3.0
	speedBike    = 10.0
	speedTransit = 18.0
	speedDrive   = 28.0
)

// TravelMode selects the speed profile for EstimateTravelMinutes.
type TravelMode string

const (
	ModeWalk    TravelMode = "walk"
	ModeBike    TravelMode = "bike"
	ModeTransit TravelMode = "transit"
	ModeDrive   TravelMode = "drive"
)

// Haversine returns the great-circle distance in miles between two
// latitude/longitude pairs.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// EstimateTravelMinutes converts a distance to an approximate door-to-door
// duration for the given mode. Unknown modes fall back to driving.
func EstimateTravelMinutes(miles float64, mode TravelMode) int {
	if miles <= 0 {
		return 0
	}

	speed := speedDrive
	switch mode {
	case ModeWalk:
		speed = speedWalk
	case ModeBike:
		speed = speedBike
	case ModeTransit:
		speed = speedTransit
	}

	minutes := miles / speed * 60
	if minutes < 1 {
		return 1
	}
	return int(math.Round(minutes))
}

// FormatDistance renders a distance for inclusion in context lines,
// e.g. "0.4 mi" or "12.3 mi".
func FormatDistance(miles float64) string {
	return fmt.Sprintf("%.1f mi", miles)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

package geo

import (
	"math"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
)

const earthRadiusMeters = 6371000

// HaversineMeters returns the great-circle distance between a and b.
func HaversineMeters(a, b domain.Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h a hair past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// SpeedKmh derives a speed from two positions dt seconds apart. It returns
// false when dt is not positive.
func SpeedKmh(from, to domain.Coordinate, dtSeconds float64) (float64, bool) {
	if dtSeconds <= 0 {
		return 0, false
	}
	return HaversineMeters(from, to) / dtSeconds * 3.6, true
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

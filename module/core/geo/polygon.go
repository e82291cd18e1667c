package geo

import (
	"fmt"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
)

// Contains reports whether point lies inside polygon using the even-odd rule,
// with longitude as x and latitude as y. No geodesic correction is applied and
// antimeridian-crossing polygons are not supported.
//
// Points exactly on an edge or vertex may land on either side; callers should
// not rely on boundary results.
func Contains(polygon []domain.Coordinate, point domain.Coordinate) (bool, error) {
	n := len(polygon)
	if n < 3 {
		return false, fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", domain.ErrInvalidZoneDefinition, n)
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := polygon[i], polygon[j]
		if (vi.Lat > point.Lat) != (vj.Lat > point.Lat) &&
			point.Lon < (vj.Lon-vi.Lon)*(point.Lat-vi.Lat)/(vj.Lat-vi.Lat)+vi.Lon {
			inside = !inside
		}
		j = i
	}
	return inside, nil
}

// InCircle reports whether point is within radiusMeters of center.
func InCircle(center domain.Coordinate, radiusMeters float64, point domain.Coordinate) bool {
	return HaversineMeters(center, point) <= radiusMeters
}

// ZoneContains dispatches on the zone kind.
func ZoneContains(zone *domain.GeofenceZone, point domain.Coordinate) (bool, error) {
	switch zone.Kind {
	case domain.ZoneCircle:
		if zone.RadiusMeters <= 0 {
			return false, fmt.Errorf("%w: zone %s radius %v", domain.ErrInvalidZoneDefinition, zone.ID, zone.RadiusMeters)
		}
		return InCircle(zone.Center, zone.RadiusMeters, point), nil
	case domain.ZonePolygon:
		return Contains(zone.Vertices, point)
	default:
		return false, fmt.Errorf("%w: zone %s: unknown type %q", domain.ErrInvalidZoneDefinition, zone.ID, zone.Kind)
	}
}

package domain

import (
	"fmt"
	"math"
)

type ZoneKind string

const (
	ZoneCircle  ZoneKind = "circle"
	ZonePolygon ZoneKind = "polygon"
)

// GeofenceZone is either a circle (Center, RadiusMeters) or a polygon
// (Vertices). Polygons are implicitly closed; the last vertex connects back
// to the first and need not repeat it.
type GeofenceZone struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Kind         ZoneKind     `json:"type" yaml:"type"`
	Center       Coordinate   `json:"center" yaml:"center"`
	RadiusMeters float64      `json:"radiusMeters" yaml:"radiusMeters"`
	Vertices     []Coordinate `json:"points,omitempty" yaml:"points"`
}

func (z *GeofenceZone) Validate() error {
	if z.ID == "" {
		return fmt.Errorf("%w: id: required", ErrInvalidZoneDefinition)
	}
	switch z.Kind {
	case ZoneCircle:
		if err := z.Center.Validate(); err != nil {
			return fmt.Errorf("%w: zone %s center: %v", ErrInvalidZoneDefinition, z.ID, err)
		}
		if math.IsNaN(z.RadiusMeters) || math.IsInf(z.RadiusMeters, 0) || z.RadiusMeters <= 0 {
			return fmt.Errorf("%w: zone %s radius %v: must be positive", ErrInvalidZoneDefinition, z.ID, z.RadiusMeters)
		}
	case ZonePolygon:
		if len(z.Vertices) < 3 {
			return fmt.Errorf("%w: zone %s: polygon needs at least 3 vertices, got %d", ErrInvalidZoneDefinition, z.ID, len(z.Vertices))
		}
		for i, v := range z.Vertices {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%w: zone %s vertex %d: %v", ErrInvalidZoneDefinition, z.ID, i, err)
			}
		}
	default:
		return fmt.Errorf("%w: zone %s: unknown type %q", ErrInvalidZoneDefinition, z.ID, z.Kind)
	}
	return nil
}

// DisplayName falls back to the id for zones created without a name.
func (z *GeofenceZone) DisplayName() string {
	if z.Name != "" {
		return z.Name
	}
	return z.ID
}

// Clone returns a deep copy so callers cannot mutate catalog-owned vertices.
func (z GeofenceZone) Clone() GeofenceZone {
	if z.Vertices != nil {
		vs := make([]Coordinate, len(z.Vertices))
		copy(vs, z.Vertices)
		z.Vertices = vs
	}
	return z
}

package dto

import "github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"

// ZoneMessage is the administrative zone shape: circles carry
// centerLat/centerLon/radiusMeters, polygons carry points.
type ZoneMessage struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Type         string              `json:"type"`
	CenterLat    *float64            `json:"centerLat,omitempty"`
	CenterLon    *float64            `json:"centerLon,omitempty"`
	RadiusMeters *float64            `json:"radiusMeters,omitempty"`
	Points       []domain.Coordinate `json:"points,omitempty"`
}

func (m *ZoneMessage) ToZone() domain.GeofenceZone {
	z := domain.GeofenceZone{
		ID:       m.ID,
		Name:     m.Name,
		Kind:     domain.ZoneKind(m.Type),
		Vertices: m.Points,
	}
	if m.CenterLat != nil {
		z.Center.Lat = *m.CenterLat
	}
	if m.CenterLon != nil {
		z.Center.Lon = *m.CenterLon
	}
	if m.RadiusMeters != nil {
		z.RadiusMeters = *m.RadiusMeters
	}
	return z
}

func FromZone(z *domain.GeofenceZone) ZoneMessage {
	m := ZoneMessage{ID: z.ID, Name: z.Name, Type: string(z.Kind)}
	switch z.Kind {
	case domain.ZoneCircle:
		lat, lon, r := z.Center.Lat, z.Center.Lon, z.RadiusMeters
		m.CenterLat, m.CenterLon, m.RadiusMeters = &lat, &lon, &r
	case domain.ZonePolygon:
		m.Points = z.Vertices
	}
	return m
}

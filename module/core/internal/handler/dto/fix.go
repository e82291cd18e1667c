package dto

import (
	"time"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
)

// FixMessage is the inbound telemetry shape. Timestamp is unix seconds.
type FixMessage struct {
	VehicleID string   `json:"vehicleId"`
	Lat       float64  `json:"lat"`
	Lon       float64  `json:"lon"`
	Speed     float64  `json:"speed"`
	Heading   *float64 `json:"heading,omitempty"`
	Timestamp int64    `json:"timestamp"`
	FuelLevel *float64 `json:"fuelLevel,omitempty"`
}

func (m *FixMessage) ToFix() domain.VehicleFix {
	return domain.VehicleFix{
		VehicleID:  m.VehicleID,
		Coordinate: domain.Coordinate{Lat: m.Lat, Lon: m.Lon},
		SpeedKmh:   m.Speed,
		Heading:    m.Heading,
		FuelLevel:  m.FuelLevel,
		Timestamp:  time.Unix(m.Timestamp, 0),
	}
}

package domain

import (
	"fmt"
	"math"
	"time"
)

type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v: must be between -90 and 90", c.Lat)
	}
	if math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v: must be between -180 and 180", c.Lon)
	}
	return nil
}

// VehicleFix is a single GPS sample reported by a bus.
type VehicleFix struct {
	VehicleID  string
	Coordinate Coordinate
	SpeedKmh   float64
	Heading    *float64
	FuelLevel  *float64
	Timestamp  time.Time
}

func (f *VehicleFix) Validate() error {
	if f.VehicleID == "" {
		return fmt.Errorf("%w: vehicle_id: required", ErrInvalidFix)
	}
	if err := f.Coordinate.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFix, err)
	}
	if math.IsNaN(f.SpeedKmh) || math.IsInf(f.SpeedKmh, 0) || f.SpeedKmh < 0 {
		return fmt.Errorf("%w: speed %v: must be a non-negative number", ErrInvalidFix, f.SpeedKmh)
	}
	if f.Heading != nil && (math.IsNaN(*f.Heading) || *f.Heading < 0 || *f.Heading >= 360) {
		return fmt.Errorf("%w: heading %v: must be in [0,360)", ErrInvalidFix, *f.Heading)
	}
	if f.FuelLevel != nil && (math.IsNaN(*f.FuelLevel) || *f.FuelLevel < 0 || *f.FuelLevel > 100) {
		return fmt.Errorf("%w: fuel level %v: must be in [0,100]", ErrInvalidFix, *f.FuelLevel)
	}
	if f.Timestamp.IsZero() || f.Timestamp.Unix() <= 0 {
		return fmt.Errorf("%w: timestamp: must be positive", ErrInvalidFix)
	}
	return nil
}

type Vehicle struct {
	VehicleID string `json:"vehicle_id"`
}

type HistoryQuery struct {
	VehicleID string
	Start     time.Time
	End       time.Time
}

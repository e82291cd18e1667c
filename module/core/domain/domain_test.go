package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func ptr(v float64) *float64 { return &v }

func TestVehicleFixValidate(t *testing.T) {
	valid := VehicleFix{
		VehicleID:  "BUS-01",
		Coordinate: Coordinate{Lat: -1.2864, Lon: 36.8172},
		SpeedKmh:   40,
		Timestamp:  time.Unix(1715000000, 0),
	}

	tests := []struct {
		name    string
		mutate  func(f *VehicleFix)
		wantErr bool
	}{
		{"valid", func(*VehicleFix) {}, false},
		{"heading and fuel", func(f *VehicleFix) { f.Heading = ptr(359.9); f.FuelLevel = ptr(100) }, false},
		{"empty vehicle", func(f *VehicleFix) { f.VehicleID = "" }, true},
		{"lat too high", func(f *VehicleFix) { f.Coordinate.Lat = 90.1 }, true},
		{"lon too low", func(f *VehicleFix) { f.Coordinate.Lon = -180.1 }, true},
		{"nan lat", func(f *VehicleFix) { f.Coordinate.Lat = math.NaN() }, true},
		{"negative speed", func(f *VehicleFix) { f.SpeedKmh = -1 }, true},
		{"infinite speed", func(f *VehicleFix) { f.SpeedKmh = math.Inf(1) }, true},
		{"heading 360", func(f *VehicleFix) { f.Heading = ptr(360) }, true},
		{"fuel over 100", func(f *VehicleFix) { f.FuelLevel = ptr(100.5) }, true},
		{"zero timestamp", func(f *VehicleFix) { f.Timestamp = time.Time{} }, true},
		{"epoch timestamp", func(f *VehicleFix) { f.Timestamp = time.Unix(0, 0) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			err := f.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidFix) {
				t.Fatalf("expected ErrInvalidFix, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestGeofenceZoneValidate(t *testing.T) {
	square := []Coordinate{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	tests := []struct {
		name    string
		zone    GeofenceZone
		wantErr bool
	}{
		{"circle", GeofenceZone{ID: "a", Kind: ZoneCircle, Center: Coordinate{Lat: 1, Lon: 1}, RadiusMeters: 10}, false},
		{"polygon", GeofenceZone{ID: "b", Kind: ZonePolygon, Vertices: square}, false},
		{"missing id", GeofenceZone{Kind: ZoneCircle, RadiusMeters: 10}, true},
		{"zero radius", GeofenceZone{ID: "c", Kind: ZoneCircle}, true},
		{"bad center", GeofenceZone{ID: "d", Kind: ZoneCircle, Center: Coordinate{Lat: 100}, RadiusMeters: 10}, true},
		{"two vertices", GeofenceZone{ID: "e", Kind: ZonePolygon, Vertices: square[:2]}, true},
		{"bad vertex", GeofenceZone{ID: "f", Kind: ZonePolygon, Vertices: []Coordinate{{0, 0}, {0, 200}, {1, 1}}}, true},
		{"unknown kind", GeofenceZone{ID: "g", Kind: "route"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.zone.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidZoneDefinition) {
				t.Fatalf("expected ErrInvalidZoneDefinition, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestGeofenceZoneClone(t *testing.T) {
	z := GeofenceZone{ID: "p", Kind: ZonePolygon, Vertices: []Coordinate{{0, 0}, {0, 1}, {1, 1}}}
	c := z.Clone()
	c.Vertices[0].Lat = 42
	if z.Vertices[0].Lat != 0 {
		t.Error("clone shares vertices with the original")
	}
}

func TestDisplayName(t *testing.T) {
	z := GeofenceZone{ID: "gate"}
	if z.DisplayName() != "gate" {
		t.Errorf("expected id fallback, got %q", z.DisplayName())
	}
	z.Name = "Main Gate"
	if z.DisplayName() != "Main Gate" {
		t.Errorf("expected name, got %q", z.DisplayName())
	}
}

func TestAlertKey(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 30, 0, 0, time.FixedZone("EAT", 3*3600))
	a := AlertEvent{ID: "1", VehicleID: "BUS-01", ZoneID: "gate", Kind: AlertEnter, Timestamp: ts}
	b := AlertEvent{ID: "2", VehicleID: "BUS-01", ZoneID: "gate", Kind: AlertEnter, Timestamp: ts.UTC()}

	if a.Key() != b.Key() {
		t.Errorf("same transition should share a key: %q vs %q", a.Key(), b.Key())
	}
	b.Kind = AlertExit
	if a.Key() == b.Key() {
		t.Error("different kinds should not share a key")
	}

	b.Kind = AlertEnter
	b.Seq = 7
	if a.Key() == b.Key() {
		t.Error("events from different fixes in the same second should not share a key")
	}
}

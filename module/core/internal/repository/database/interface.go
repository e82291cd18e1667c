package database

import (
	"context"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
)

type LocationRepository interface {
	Insert(ctx context.Context, fix *domain.VehicleFix) error
	GetLatest(ctx context.Context, vehicleID string) (*domain.VehicleFix, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.VehicleFix, error)
	GetAllVehicles(ctx context.Context) ([]domain.Vehicle, error)
}

type ZoneRepository interface {
	Upsert(ctx context.Context, zone *domain.GeofenceZone) error
	// Delete fails with domain.ErrZoneNotFound when no zone has the id.
	Delete(ctx context.Context, zoneID string) error
	List(ctx context.Context) ([]domain.GeofenceZone, error)
}

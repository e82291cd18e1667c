package postgres

import (
	"context"
	"database/sql"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/repository/database"
)

var _ database.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `vehicle_id, latitude, longitude, speed_kmh, heading, fuel_level, timestamp`

type LocationRepo struct {
	db *sql.DB
}

func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

func (r *LocationRepo) Insert(ctx context.Context, fix *domain.VehicleFix) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vehicle_locations (`+locationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		fix.VehicleID, fix.Coordinate.Lat, fix.Coordinate.Lon, fix.SpeedKmh, fix.Heading, fix.FuelLevel, fix.Timestamp,
	)
	return err
}

func (r *LocationRepo) GetLatest(ctx context.Context, vehicleID string) (*domain.VehicleFix, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM vehicle_locations WHERE vehicle_id = $1 ORDER BY timestamp DESC LIMIT 1`,
		vehicleID,
	)

	var fix domain.VehicleFix
	if err := scanFix(row, &fix); err != nil {
		return nil, err
	}
	return &fix, nil
}

func (r *LocationRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.VehicleFix, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM vehicle_locations WHERE vehicle_id = $1 AND timestamp >= $2 AND timestamp <= $3 ORDER BY timestamp ASC`,
		query.VehicleID, query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.VehicleFix
	for rows.Next() {
		var fix domain.VehicleFix
		if err := scanFix(rows, &fix); err != nil {
			return nil, err
		}
		results = append(results, fix)
	}
	return results, rows.Err()
}

func (r *LocationRepo) GetAllVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT vehicle_id FROM vehicle_locations ORDER BY vehicle_id`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.VehicleID); err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFix(s scanner, fix *domain.VehicleFix) error {
	return s.Scan(&fix.VehicleID, &fix.Coordinate.Lat, &fix.Coordinate.Lon, &fix.SpeedKmh, &fix.Heading, &fix.FuelLevel, &fix.Timestamp)
}

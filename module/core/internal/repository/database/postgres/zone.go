package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/repository/database"
)

var _ database.ZoneRepository = (*ZoneRepo)(nil)

type ZoneRepo struct {
	db *sqlx.DB
}

func NewZoneRepo(db *sqlx.DB) *ZoneRepo {
	return &ZoneRepo{db: db}
}

type zoneRow struct {
	ID           string          `db:"id"`
	Name         string          `db:"name"`
	Kind         string          `db:"kind"`
	CenterLat    sql.NullFloat64 `db:"center_lat"`
	CenterLon    sql.NullFloat64 `db:"center_lon"`
	RadiusMeters sql.NullFloat64 `db:"radius_meters"`
	Points       sql.NullString  `db:"points"`
}

func (r *ZoneRepo) Upsert(ctx context.Context, zone *domain.GeofenceZone) error {
	row, err := toZoneRow(zone)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO geofence_zones (id, name, kind, center_lat, center_lon, radius_meters, points)
		VALUES (:id, :name, :kind, :center_lat, :center_lon, :radius_meters, :points)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			kind = EXCLUDED.kind,
			center_lat = EXCLUDED.center_lat,
			center_lon = EXCLUDED.center_lon,
			radius_meters = EXCLUDED.radius_meters,
			points = EXCLUDED.points,
			updated_at = NOW()`, row)
	return err
}

func (r *ZoneRepo) Delete(ctx context.Context, zoneID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM geofence_zones WHERE id = $1`, zoneID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrZoneNotFound, zoneID)
	}
	return nil
}

func (r *ZoneRepo) List(ctx context.Context) ([]domain.GeofenceZone, error) {
	var rows []zoneRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT id, name, kind, center_lat, center_lon, radius_meters, points FROM geofence_zones ORDER BY created_at, id`,
	); err != nil {
		return nil, err
	}

	zones := make([]domain.GeofenceZone, 0, len(rows))
	for _, row := range rows {
		z, err := row.toZone()
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}

func toZoneRow(zone *domain.GeofenceZone) (zoneRow, error) {
	row := zoneRow{ID: zone.ID, Name: zone.Name, Kind: string(zone.Kind)}
	switch zone.Kind {
	case domain.ZoneCircle:
		row.CenterLat = sql.NullFloat64{Float64: zone.Center.Lat, Valid: true}
		row.CenterLon = sql.NullFloat64{Float64: zone.Center.Lon, Valid: true}
		row.RadiusMeters = sql.NullFloat64{Float64: zone.RadiusMeters, Valid: true}
	case domain.ZonePolygon:
		points, err := json.Marshal(zone.Vertices)
		if err != nil {
			return row, fmt.Errorf("marshal points: %w", err)
		}
		row.Points = sql.NullString{String: string(points), Valid: true}
	}
	return row, nil
}

func (row zoneRow) toZone() (domain.GeofenceZone, error) {
	z := domain.GeofenceZone{ID: row.ID, Name: row.Name, Kind: domain.ZoneKind(row.Kind)}
	z.Center = domain.Coordinate{Lat: row.CenterLat.Float64, Lon: row.CenterLon.Float64}
	z.RadiusMeters = row.RadiusMeters.Float64
	if row.Points.Valid && row.Points.String != "" {
		if err := json.Unmarshal([]byte(row.Points.String), &z.Vertices); err != nil {
			return z, fmt.Errorf("zone %s points: %w", row.ID, err)
		}
	}
	return z, nil
}

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
)

var locationTestColumns = []string{"vehicle_id", "latitude", "longitude", "speed_kmh", "heading", "fuel_level", "timestamp"}

func TestInsert_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts := time.Unix(1715003456, 0)
	mock.ExpectExec(`INSERT INTO vehicle_locations`).
		WithArgs("BUS-01", -1.2864, 36.8172, 42.5, 90.0, 75.0, ts).
		WillReturnResult(sqlmock.NewResult(1, 1))

	heading, fuel := 90.0, 75.0
	repo := NewLocationRepo(db)
	err = repo.Insert(context.Background(), &domain.VehicleFix{
		VehicleID:  "BUS-01",
		Coordinate: domain.Coordinate{Lat: -1.2864, Lon: 36.8172},
		SpeedKmh:   42.5,
		Heading:    &heading,
		FuelLevel:  &fuel,
		Timestamp:  ts,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestInsert_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts := time.Unix(1715003456, 0)
	mock.ExpectExec(`INSERT INTO vehicle_locations`).
		WithArgs("BUS-01", -1.2864, 36.8172, 0.0, sqlmock.AnyArg(), sqlmock.AnyArg(), ts).
		WillReturnError(sqlmock.ErrCancelled)

	repo := NewLocationRepo(db)
	err = repo.Insert(context.Background(), &domain.VehicleFix{
		VehicleID:  "BUS-01",
		Coordinate: domain.Coordinate{Lat: -1.2864, Lon: 36.8172},
		Timestamp:  ts,
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetLatest_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts := time.Unix(1715003456, 0)
	rows := sqlmock.NewRows(locationTestColumns).
		AddRow("BUS-01", -1.2864, 36.8172, 38.0, 180.0, nil, ts)

	mock.ExpectQuery(`SELECT vehicle_id, latitude, longitude, speed_kmh, heading, fuel_level, timestamp FROM vehicle_locations WHERE vehicle_id = (.+) ORDER BY timestamp DESC LIMIT 1`).
		WithArgs("BUS-01").
		WillReturnRows(rows)

	repo := NewLocationRepo(db)
	vl, err := repo.GetLatest(context.Background(), "BUS-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vl.VehicleID != "BUS-01" {
		t.Errorf("expected BUS-01, got %s", vl.VehicleID)
	}
	if vl.Coordinate.Lat != -1.2864 {
		t.Errorf("expected -1.2864, got %f", vl.Coordinate.Lat)
	}
	if vl.Heading == nil || *vl.Heading != 180 {
		t.Errorf("expected heading 180, got %v", vl.Heading)
	}
	if vl.FuelLevel != nil {
		t.Errorf("expected no fuel level, got %v", *vl.FuelLevel)
	}
	if !vl.Timestamp.Equal(ts) {
		t.Errorf("expected %v, got %v", ts, vl.Timestamp)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetLatest_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows(locationTestColumns)
	mock.ExpectQuery(`SELECT vehicle_id, latitude, longitude, speed_kmh, heading, fuel_level, timestamp FROM vehicle_locations WHERE vehicle_id = (.+)`).
		WithArgs("UNKNOWN").
		WillReturnRows(rows)

	repo := NewLocationRepo(db)
	_, err = repo.GetLatest(context.Background(), "UNKNOWN")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetHistory_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts1 := time.Unix(1715000000, 0)
	ts2 := time.Unix(1715005000, 0)
	start := time.Unix(1715000000, 0)
	end := time.Unix(1715009999, 0)

	rows := sqlmock.NewRows(locationTestColumns).
		AddRow("BUS-01", -1.28, 36.81, 20.0, nil, nil, ts1).
		AddRow("BUS-01", -1.29, 36.82, 25.0, nil, nil, ts2)

	mock.ExpectQuery(`SELECT vehicle_id, latitude, longitude, speed_kmh, heading, fuel_level, timestamp FROM vehicle_locations WHERE vehicle_id = (.+) AND timestamp >= (.+) AND timestamp <= (.+) ORDER BY timestamp ASC`).
		WithArgs("BUS-01", start, end).
		WillReturnRows(rows)

	repo := NewLocationRepo(db)
	results, err := repo.GetHistory(context.Background(), &domain.HistoryQuery{
		VehicleID: "BUS-01",
		Start:     start,
		End:       end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Coordinate.Lat != -1.28 {
		t.Errorf("expected -1.28, got %f", results[0].Coordinate.Lat)
	}
	if results[1].Coordinate.Lat != -1.29 {
		t.Errorf("expected -1.29, got %f", results[1].Coordinate.Lat)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetHistory_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	start := time.Unix(1715000000, 0)
	end := time.Unix(1715009999, 0)
	rows := sqlmock.NewRows(locationTestColumns)

	mock.ExpectQuery(`SELECT vehicle_id, latitude, longitude, speed_kmh, heading, fuel_level, timestamp FROM vehicle_locations`).
		WithArgs("BUS-01", start, end).
		WillReturnRows(rows)

	repo := NewLocationRepo(db)
	results, err := repo.GetHistory(context.Background(), &domain.HistoryQuery{
		VehicleID: "BUS-01",
		Start:     start,
		End:       end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestGetHistory_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	start := time.Unix(1715000000, 0)
	end := time.Unix(1715009999, 0)

	mock.ExpectQuery(`SELECT vehicle_id, latitude, longitude, speed_kmh, heading, fuel_level, timestamp FROM vehicle_locations`).
		WithArgs("BUS-01", start, end).
		WillReturnError(sqlmock.ErrCancelled)

	repo := NewLocationRepo(db)
	_, err = repo.GetHistory(context.Background(), &domain.HistoryQuery{
		VehicleID: "BUS-01",
		Start:     start,
		End:       end,
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetAllVehicles_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"vehicle_id"}).
		AddRow("BUS-01").
		AddRow("BUS-02")

	mock.ExpectQuery(`SELECT DISTINCT vehicle_id FROM vehicle_locations`).
		WillReturnRows(rows)

	repo := NewLocationRepo(db)
	results, err := repo.GetAllVehicles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(results))
	}
	if results[0].VehicleID != "BUS-01" {
		t.Errorf("expected BUS-01, got %s", results[0].VehicleID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetAllVehicles_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"vehicle_id"})
	mock.ExpectQuery(`SELECT DISTINCT vehicle_id FROM vehicle_locations`).
		WillReturnRows(rows)

	repo := NewLocationRepo(db)
	results, err := repo.GetAllVehicles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 vehicles, got %d", len(results))
	}
}

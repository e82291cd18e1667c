package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/catalog"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/repository/database"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/tracker"
)

// ZoneService is the administrative side of the catalog: writes go to the
// store first and are published to the in-memory catalog only once stored.
// Writes and syncs are serialized so a sync never republishes a store read
// that an admin write has since superseded.
type ZoneService struct {
	mu      sync.Mutex
	repo    database.ZoneRepository
	catalog *catalog.Catalog
	tracker *tracker.Tracker
}

func NewZoneService(repo database.ZoneRepository, cat *catalog.Catalog, tr *tracker.Tracker) *ZoneService {
	return &ZoneService{repo: repo, catalog: cat, tracker: tr}
}

func (s *ZoneService) Upsert(ctx context.Context, zone domain.GeofenceZone) error {
	if err := zone.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Upsert(ctx, &zone); err != nil {
		return fmt.Errorf("store zone %s: %w", zone.ID, err)
	}
	return s.catalog.Upsert(zone)
}

// Remove deletes the zone and forgets every vehicle's state for it.
func (s *ZoneService) Remove(ctx context.Context, zoneID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Delete(ctx, zoneID); err != nil {
		return err
	}
	if err := s.catalog.Remove(zoneID); err != nil && !errors.Is(err, domain.ErrZoneNotFound) {
		return err
	}
	s.tracker.EvictZone(zoneID)
	return nil
}

func (s *ZoneService) Get(zoneID string) (domain.GeofenceZone, error) {
	return s.catalog.Get(zoneID)
}

func (s *ZoneService) List() []domain.GeofenceZone {
	return s.catalog.List()
}

func (s *ZoneService) ListNear(point domain.Coordinate, maxDistanceMeters float64) []domain.GeofenceZone {
	return s.catalog.ListZonesNear(point, maxDistanceMeters)
}

// Sync reloads the catalog from the store. Stored zones that fail validation
// are skipped; zones no longer stored are evicted from the tracker.
func (s *ZoneService) Sync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list zones: %w", err)
	}

	valid := make([]domain.GeofenceZone, 0, len(stored))
	for _, z := range stored {
		if err := z.Validate(); err != nil {
			log.WithField("zone_id", z.ID).Warnf("ignoring stored zone: %v", err)
			continue
		}
		valid = append(valid, z)
	}

	removed, err := s.catalog.Replace(valid)
	if err != nil {
		return err
	}
	for _, id := range removed {
		s.tracker.EvictZone(id)
	}
	log.WithFields(log.Fields{"zones": len(valid), "removed": len(removed)}).Debug("zone catalog synced")
	return nil
}

// Seed upserts every zone, continuing past failures.
func (s *ZoneService) Seed(ctx context.Context, zones []domain.GeofenceZone) error {
	var errs []error
	for _, z := range zones {
		if err := s.Upsert(ctx, z); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

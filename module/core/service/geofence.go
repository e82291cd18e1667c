package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/google/uuid"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/geo"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/tracker"
)

const DefaultSpeedLimitKmh = 80

type zoneCatalog interface {
	Get(zoneID string) (domain.GeofenceZone, error)
}

type alertEmitter interface {
	Publish(events []domain.AlertEvent)
}

type GeofenceOptions struct {
	// SpeedLimitKmh disables speed alerts when zero.
	SpeedLimitKmh float64
	// DeriveSpeed replaces the reported speed with distance over time from
	// the vehicle's previous fix, when there is one.
	DeriveSpeed bool
}

// GeofenceService evaluates each incoming fix against the zones relevant to
// its vehicle and turns containment changes and speeding into alerts.
type GeofenceService struct {
	catalog  zoneCatalog
	resolver ZoneResolver
	tracker  *tracker.Tracker
	emitter  alertEmitter
	opts     GeofenceOptions
}

func NewGeofenceService(catalog zoneCatalog, resolver ZoneResolver, tr *tracker.Tracker, em alertEmitter, opts GeofenceOptions) *GeofenceService {
	return &GeofenceService{
		catalog:  catalog,
		resolver: resolver,
		tracker:  tr,
		emitter:  em,
		opts:     opts,
	}
}

// Ingest returns the alerts produced by fix: zone transitions in resolver
// order, then a speed alert if the limit is exceeded. The same alerts are
// handed to the emitter before Ingest returns. A malformed fix fails with
// domain.ErrInvalidFix; a zone that cannot be evaluated is skipped.
func (s *GeofenceService) Ingest(ctx context.Context, fix domain.VehicleFix) ([]domain.AlertEvent, error) {
	logger := log.WithContext(ctx).WithField("vehicle_id", fix.VehicleID)

	if err := fix.Validate(); err != nil {
		logger.Warnf("dropping fix: %v", err)
		return nil, err
	}

	sess := s.tracker.Begin(fix.VehicleID)
	defer sess.End()

	speed := fix.SpeedKmh
	if s.opts.DeriveSpeed {
		if prev := sess.LastFix(); prev != nil {
			dt := fix.Timestamp.Sub(prev.Timestamp).Seconds()
			if derived, ok := geo.SpeedKmh(prev.Coordinate, fix.Coordinate, dt); ok {
				speed = derived
			}
		}
	}

	var alerts []domain.AlertEvent
	for _, zoneID := range s.resolver.ZonesFor(fix.VehicleID) {
		zone, err := s.catalog.Get(zoneID)
		if err != nil {
			logger.WithField("zone_id", zoneID).Warnf("skipping zone: %v", err)
			continue
		}

		inside, err := evaluateZone(&zone, fix.Coordinate)
		if err != nil {
			logger.WithField("zone_id", zoneID).Errorf("skipping zone: %v", err)
			continue
		}

		switch sess.Evaluate(zone.ID, inside, fix.Timestamp) {
		case tracker.Entered:
			alerts = append(alerts, newZoneAlert(fix, &zone, domain.AlertEnter))
		case tracker.Exited:
			alerts = append(alerts, newZoneAlert(fix, &zone, domain.AlertExit))
		}
	}

	if s.opts.SpeedLimitKmh > 0 && speed > s.opts.SpeedLimitKmh {
		alerts = append(alerts, newSpeedAlert(fix, speed, s.opts.SpeedLimitKmh))
	}

	seq := sess.Next()
	for i := range alerts {
		alerts[i].Seq = seq
	}
	sess.SetLastFix(fix)

	// published under the vehicle lock so per-vehicle order reaches the queues intact
	if s.emitter != nil {
		s.emitter.Publish(alerts)
	}
	return alerts, nil
}

func evaluateZone(zone *domain.GeofenceZone, p domain.Coordinate) (inside bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			inside = false
			err = fmt.Errorf("%w: zone %s: %v", domain.ErrEvaluationFailure, zone.ID, r)
		}
	}()

	inside, err = geo.ZoneContains(zone, p)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrEvaluationFailure, err)
	}
	return inside, nil
}

func newZoneAlert(fix domain.VehicleFix, zone *domain.GeofenceZone, kind domain.AlertKind) domain.AlertEvent {
	verb := "entered"
	if kind == domain.AlertExit {
		verb = "exited"
	}
	return domain.AlertEvent{
		ID:        uuid.NewString(),
		VehicleID: fix.VehicleID,
		ZoneID:    zone.ID,
		ZoneName:  zone.DisplayName(),
		Kind:      kind,
		Message:   fmt.Sprintf("Bus %s %s %s", fix.VehicleID, verb, zone.DisplayName()),
		Timestamp: fix.Timestamp,
	}
}

func newSpeedAlert(fix domain.VehicleFix, speed, limit float64) domain.AlertEvent {
	return domain.AlertEvent{
		ID:        uuid.NewString(),
		VehicleID: fix.VehicleID,
		Kind:      domain.AlertSpeed,
		Message:   fmt.Sprintf("Bus %s is speeding at %.1f km/h (limit %.0f km/h)", fix.VehicleID, speed, limit),
		Timestamp: fix.Timestamp,
		Value:     &speed,
	}
}

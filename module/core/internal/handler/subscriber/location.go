package subscriber

import (
	"context"
	"encoding/json"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/handler/dto"
)

const DefaultTopic = "/school/bus/+/location"

type locationService interface {
	SaveLocation(ctx context.Context, fix *domain.VehicleFix) error
}

type geofenceService interface {
	Ingest(ctx context.Context, fix domain.VehicleFix) ([]domain.AlertEvent, error)
}

// LocationSubscriber feeds bus fixes from MQTT into the geofence pipeline and
// records them in location history. Paho delivers messages for a subscription
// one at a time, which keeps each bus's fixes in arrival order.
type LocationSubscriber struct {
	client      mqtt.Client
	topic       string
	locationSvc locationService
	geofenceSvc geofenceService
}

func NewLocationSubscriber(client mqtt.Client, topic string, locationSvc locationService, geofenceSvc geofenceService) *LocationSubscriber {
	if topic == "" {
		topic = DefaultTopic
	}
	return &LocationSubscriber{
		client:      client,
		topic:       topic,
		locationSvc: locationSvc,
		geofenceSvc: geofenceSvc,
	}
}

func (s *LocationSubscriber) Start() error {
	token := s.client.Subscribe(s.topic, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *LocationSubscriber) Stop() error {
	token := s.client.Unsubscribe(s.topic)
	token.Wait()
	return token.Error()
}

func (s *LocationSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw dto.FixMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.WithField("topic", msg.Topic()).Warnf("invalid location message: %v", err)
		return
	}

	fix := raw.ToFix()
	ctx := context.Background()

	// alerting never waits on, or depends on, the history write
	alerts, err := s.geofenceSvc.Ingest(ctx, fix)
	if err != nil {
		return
	}
	if len(alerts) > 0 {
		log.WithFields(log.Fields{"vehicle_id": fix.VehicleID, "alerts": len(alerts)}).Info("alerts raised")
	}

	if err := s.locationSvc.SaveLocation(ctx, &fix); err != nil {
		log.WithField("vehicle_id", fix.VehicleID).Errorf("save location error: %v", err)
	}
}

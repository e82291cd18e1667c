package publisher

import (
	"encoding/json"
	"fmt"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
)

// AlertMessage is the outbound alert shape shared by every transport.
type AlertMessage struct {
	ID        string   `json:"id"`
	VehicleID string   `json:"vehicleId"`
	ZoneID    string   `json:"zoneId,omitempty"`
	ZoneName  string   `json:"zoneName,omitempty"`
	Kind      string   `json:"kind"`
	Message   string   `json:"message"`
	Timestamp int64    `json:"timestamp"`
	Value     *float64 `json:"value,omitempty"`
}

func NewAlertMessage(alert *domain.AlertEvent) AlertMessage {
	return AlertMessage{
		ID:        alert.ID,
		VehicleID: alert.VehicleID,
		ZoneID:    alert.ZoneID,
		ZoneName:  alert.ZoneName,
		Kind:      string(alert.Kind),
		Message:   alert.Message,
		Timestamp: alert.Timestamp.Unix(),
		Value:     alert.Value,
	}
}

func MarshalAlert(alert *domain.AlertEvent) ([]byte, error) {
	body, err := json.Marshal(NewAlertMessage(alert))
	if err != nil {
		return nil, fmt.Errorf("marshal alert: %w", err)
	}
	return body, nil
}

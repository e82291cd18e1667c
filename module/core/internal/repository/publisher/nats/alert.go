package nats

import (
	"context"
	"fmt"

	natsgo "github.com/nats-io/nats.go"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/repository/publisher"
)

var _ publisher.AlertPublisher = (*AlertPublisher)(nil)

// AlertPublisher publishes on <prefix>.<kind>.<vehicle id>, e.g.
// transport.alerts.enter.BUS-07.
type AlertPublisher struct {
	conn   *natsgo.Conn
	prefix string
}

func NewAlertPublisher(conn *natsgo.Conn, prefix string) *AlertPublisher {
	return &AlertPublisher{conn: conn, prefix: prefix}
}

func Subject(prefix string, alert *domain.AlertEvent) string {
	return fmt.Sprintf("%s.%s.%s", prefix, alert.Kind, alert.VehicleID)
}

func (p *AlertPublisher) PublishAlert(ctx context.Context, alert *domain.AlertEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := publisher.MarshalAlert(alert)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(Subject(p.prefix, alert), body); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}

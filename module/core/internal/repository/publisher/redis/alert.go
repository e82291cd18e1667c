package redis

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/repository/publisher"
)

var _ publisher.AlertPublisher = (*AlertPublisher)(nil)

type AlertPublisher struct {
	client  goredis.UniversalClient
	channel string
}

func NewAlertPublisher(client goredis.UniversalClient, channel string) *AlertPublisher {
	return &AlertPublisher{client: client, channel: channel}
}

// PublishAlert publishes to the shared channel and to a per-vehicle channel
// so parents can subscribe to a single bus.
func (p *AlertPublisher) PublishAlert(ctx context.Context, alert *domain.AlertEvent) error {
	body, err := publisher.MarshalAlert(alert)
	if err != nil {
		return err
	}

	pipe := p.client.Pipeline()
	pipe.Publish(ctx, p.channel, body)
	pipe.Publish(ctx, p.channel+"."+alert.VehicleID, body)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

package config

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

const rabbitConnectionName = "school-transport-alerts"

// NewRabbitMQ dials the alert broker. The connection is named so it can be
// told apart in the management UI from the event listener's.
func NewRabbitMQ(cfg *Config) (*amqp.Connection, error) {
	props := amqp.NewConnectionProperties()
	props.SetClientConnectionName(rabbitConnectionName)

	conn, err := amqp.DialConfig(cfg.RabbitMQURL, amqp.Config{
		Heartbeat:  10 * time.Second,
		Locale:     "en_US",
		Properties: props,
	})
	if err != nil {
		return nil, fmt.Errorf("rabbitmq connect: %w", err)
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		if err, ok := <-closed; ok && err != nil {
			log.WithField("connection", rabbitConnectionName).Errorf("rabbitmq connection closed: %v", err)
		}
	}()

	log.WithField("connection", rabbitConnectionName).Info("connected to rabbitmq")
	return conn, nil
}

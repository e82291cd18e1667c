package config

import (
	"fmt"

	natsgo "github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// NewNATS returns nil when NATS_URL is unset.
func NewNATS(cfg *Config) (*natsgo.Conn, error) {
	if cfg.NATSURL == "" {
		return nil, nil
	}
	conn, err := natsgo.Connect(cfg.NATSURL,
		natsgo.Name(cfg.MQTTClientID),
		natsgo.MaxReconnects(-1),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				log.Warnf("nats disconnected: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return conn, nil
}

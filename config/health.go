package config

import (
	"context"
	"net/http"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	natsgo "github.com/nats-io/nats.go"
	amqp "github.com/rabbitmq/amqp091-go"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type HealthChecker struct {
	db       pinger
	amqpConn *amqp.Connection
	mqtt     mqtt.Client
	redis    goredis.UniversalClient
	nats     *natsgo.Conn
}

// NewHealthChecker accepts nil redis and nats for deployments without them.
func NewHealthChecker(db pinger, amqpConn *amqp.Connection, mqttClient mqtt.Client, redis goredis.UniversalClient, nats *natsgo.Conn) *HealthChecker {
	return &HealthChecker{db: db, amqpConn: amqpConn, mqtt: mqttClient, redis: redis, nats: nats}
}

func (h *HealthChecker) Register(r *gin.Engine) {
	r.GET("/healthz", h.Handle)
}

func (h *HealthChecker) Handle(c *gin.Context) {
	status := http.StatusOK
	deps := gin.H{}

	down := func(name, reason string) {
		deps[name] = gin.H{"status": "down", "error": reason}
		status = http.StatusServiceUnavailable
	}

	if err := h.db.PingContext(c.Request.Context()); err != nil {
		down("postgres", err.Error())
	} else {
		deps["postgres"] = gin.H{"status": "up"}
	}

	if h.amqpConn == nil || h.amqpConn.IsClosed() {
		down("rabbitmq", "connection closed")
	} else {
		deps["rabbitmq"] = gin.H{"status": "up"}
	}

	if h.mqtt == nil || !h.mqtt.IsConnected() {
		down("mqtt", "not connected")
	} else {
		deps["mqtt"] = gin.H{"status": "up"}
	}

	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			down("redis", err.Error())
		} else {
			deps["redis"] = gin.H{"status": "up"}
		}
	}

	if h.nats != nil {
		if !h.nats.IsConnected() {
			down("nats", "not connected")
		} else {
			deps["nats"] = gin.H{"status": "up"}
		}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}

package core

import (
	"context"
	"database/sql"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	natsgo "github.com/nats-io/nats.go"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/catalog"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/emitter"
	handler "github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/handler/http"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/handler/subscriber"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/handler/websocket"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/repository/database/postgres"
	natspub "github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/repository/publisher/nats"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/repository/publisher/rabbitmq"
	redispub "github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/repository/publisher/redis"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/service"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/tracker"
)

// Deps are the external connections the module runs on. Redis and NATS are
// optional and only add alert publishers when set.
type Deps struct {
	DB    *sql.DB
	AMQP  *amqp.Connection
	MQTT  mqtt.Client
	Redis goredis.UniversalClient
	NATS  *natsgo.Conn
}

type Options struct {
	SpeedLimitKmh  float64
	DeriveSpeed    bool
	MQTTTopic      string
	AlertQueueSize int
	RedisChannel   string
	NATSSubject    string
	// Assignments maps a vehicle to the zones on its route; unassigned
	// vehicles are checked against the whole catalog.
	Assignments map[string][]string
}

type Module struct {
	Catalog     *catalog.Catalog
	Tracker     *tracker.Tracker
	Emitter     *emitter.Emitter
	Resolver    *service.AssignmentResolver
	LocationSvc *service.LocationService
	GeofenceSvc *service.GeofenceService
	ZoneSvc     *service.ZoneService
	Hub         *websocket.Hub

	vehicleHandler *handler.VehicleHandler
	zoneHandler    *handler.ZoneHandler
	fixHandler     *handler.FixHandler
	routeHandler   *handler.RouteHandler
	subscriber     *subscriber.LocationSubscriber
	cron           *cron.Cron
}

func Build(deps Deps, opts Options) (*Module, error) {
	locationRepo := postgres.NewLocationRepo(deps.DB)
	zoneRepo := postgres.NewZoneRepo(sqlx.NewDb(deps.DB, "postgres"))

	cat := catalog.New()
	tr := tracker.New()
	em := emitter.New(emitter.Options{QueueSize: opts.AlertQueueSize})
	hub := websocket.NewHub()

	if deps.AMQP != nil {
		alertPub, err := rabbitmq.NewAlertPublisher(deps.AMQP)
		if err != nil {
			return nil, fmt.Errorf("alert publisher: %w", err)
		}
		em.Register("rabbitmq", alertPub)
	}
	if deps.Redis != nil {
		em.Register("redis", redispub.NewAlertPublisher(deps.Redis, opts.RedisChannel))
	}
	if deps.NATS != nil {
		em.Register("nats", natspub.NewAlertPublisher(deps.NATS, opts.NATSSubject))
	}
	em.Register("websocket", hub)

	resolver := service.NewAssignmentResolver(service.NewCatalogResolver(cat))
	for vehicleID, zoneIDs := range opts.Assignments {
		resolver.Assign(vehicleID, zoneIDs)
	}

	locationSvc := service.NewLocationService(locationRepo)
	zoneSvc := service.NewZoneService(zoneRepo, cat, tr)
	geofenceSvc := service.NewGeofenceService(cat, resolver, tr, em, service.GeofenceOptions{
		SpeedLimitKmh: opts.SpeedLimitKmh,
		DeriveSpeed:   opts.DeriveSpeed,
	})

	m := &Module{
		Catalog:     cat,
		Tracker:     tr,
		Emitter:     em,
		Resolver:    resolver,
		LocationSvc: locationSvc,
		GeofenceSvc: geofenceSvc,
		ZoneSvc:     zoneSvc,
		Hub:         hub,

		vehicleHandler: handler.NewVehicleHandler(locationSvc, tr),
		zoneHandler:    handler.NewZoneHandler(zoneSvc),
		fixHandler:     handler.NewFixHandler(geofenceSvc, locationSvc),
		routeHandler:   handler.NewRouteHandler(resolver),
	}
	if deps.MQTT != nil {
		m.subscriber = subscriber.NewLocationSubscriber(deps.MQTT, opts.MQTTTopic, locationSvc, geofenceSvc)
	}
	return m, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.vehicleHandler.Register(r)
	m.zoneHandler.Register(r)
	m.fixHandler.Register(r)
	m.routeHandler.Register(r)
	m.Hub.Register(r)
}

func (m *Module) StartSubscribers() error {
	if m.subscriber == nil {
		return nil
	}
	return m.subscriber.Start()
}

// StartZoneSync reloads the catalog from Postgres on the given cron spec,
// picking up zones changed by other instances.
func (m *Module) StartZoneSync(spec string) error {
	c := cron.New()
	err := c.AddFunc(spec, func() {
		if err := m.ZoneSvc.Sync(context.Background()); err != nil {
			log.Errorf("zone sync: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule zone sync %q: %w", spec, err)
	}
	c.Start()
	m.cron = c
	return nil
}

// Shutdown stops intake first, then drains pending alerts.
func (m *Module) Shutdown() {
	if m.subscriber != nil {
		if err := m.subscriber.Stop(); err != nil {
			log.Warnf("unsubscribe: %v", err)
		}
	}
	if m.cron != nil {
		m.cron.Stop()
	}
	m.Emitter.Close()
}

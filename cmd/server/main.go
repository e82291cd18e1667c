package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/config"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core"
)

func main() {
	cfg := config.Load()

	if err := config.ConfigureLogging(cfg); err != nil {
		log.Fatalf("logging: %v", err)
	}

	if err := config.ApplyMigrations(cfg); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	db, err := config.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	deps := core.Deps{DB: db, AMQP: amqpConn, MQTT: mqttClient}

	var redisClient goredis.UniversalClient
	if rc, err := config.NewRedis(cfg); err != nil {
		log.Fatalf("redis: %v", err)
	} else if rc != nil {
		defer func() { _ = rc.Close() }()
		redisClient = rc
		deps.Redis = rc
	}

	natsConn, err := config.NewNATS(cfg)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
		deps.NATS = natsConn
	}

	opts := core.Options{
		SpeedLimitKmh:  cfg.SpeedLimitKmh,
		DeriveSpeed:    cfg.DeriveSpeed,
		MQTTTopic:      cfg.MQTTTopic,
		AlertQueueSize: cfg.AlertQueueSize,
		RedisChannel:   cfg.RedisChannel,
		NATSSubject:    cfg.NATSSubject,
	}

	var zoneFile *config.ZoneFile
	if cfg.ZonesFile != "" {
		if zoneFile, err = config.LoadZoneFile(cfg.ZonesFile); err != nil {
			log.Fatalf("zones: %v", err)
		}
		opts.Assignments = zoneFile.Assignments
	}

	coreModule, err := core.Build(deps, opts)
	if err != nil {
		log.Fatalf("core module: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := coreModule.ZoneSvc.Sync(ctx); err != nil {
		log.Fatalf("load zones: %v", err)
	}
	if zoneFile != nil {
		if err := coreModule.ZoneSvc.Seed(ctx, zoneFile.Zones); err != nil {
			log.Errorf("seed zones: %v", err)
		}
	}
	log.Infof("zone catalog loaded: %d zones", coreModule.Catalog.Len())

	if err := coreModule.StartZoneSync(cfg.ZoneSyncCron); err != nil {
		log.Fatalf("zone sync: %v", err)
	}

	go coreModule.Hub.Run(ctx)

	if err := coreModule.StartSubscribers(); err != nil {
		log.Fatalf("start subscribers: %v", err)
	}

	r := gin.Default()

	health := config.NewHealthChecker(db, amqpConn, mqttClient, redisClient, natsConn)
	health.Register(r)

	coreModule.RegisterRoutes(&r.RouterGroup)

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: r}
	go func() {
		log.Infof("listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http shutdown: %v", err)
	}
	coreModule.Shutdown()
}

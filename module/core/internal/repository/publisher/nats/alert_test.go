package nats

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	natsgo "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/internal/repository/publisher"
)

func runServer(t *testing.T) *natsgo.Conn {
	t.Helper()
	srv, err := server.NewServer(&server.Options{Host: "127.0.0.1", Port: -1, NoLog: true, NoSigs: true})
	require.NoError(t, err)
	go srv.Start()
	if !srv.ReadyForConnections(5 * time.Second) {
		t.Fatal("nats server not ready")
	}
	t.Cleanup(srv.Shutdown)

	conn, err := natsgo.Connect(srv.ClientURL())
	require.NoError(t, err)
	t.Cleanup(conn.Close)
	return conn
}

func TestSubject(t *testing.T) {
	alert := &domain.AlertEvent{VehicleID: "BUS-07", Kind: domain.AlertEnter}
	assert.Equal(t, "transport.alerts.enter.BUS-07", Subject("transport.alerts", alert))
}

func TestPublishAlert(t *testing.T) {
	conn := runServer(t)

	sub, err := conn.SubscribeSync("transport.alerts.>")
	require.NoError(t, err)
	require.NoError(t, conn.Flush())

	p := NewAlertPublisher(conn, "transport.alerts")
	err = p.PublishAlert(context.Background(), &domain.AlertEvent{
		ID:        "a1",
		VehicleID: "BUS-07",
		ZoneID:    "gate",
		Kind:      domain.AlertEnter,
		Message:   "Bus BUS-07 entered Main Gate",
		Timestamp: time.Unix(1715003456, 0),
	})
	require.NoError(t, err)

	msg, err := sub.NextMsg(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "transport.alerts.enter.BUS-07", msg.Subject)

	var body publisher.AlertMessage
	require.NoError(t, json.Unmarshal(msg.Data, &body))
	assert.Equal(t, "a1", body.ID)
	assert.Equal(t, "gate", body.ZoneID)
}

func TestPublishAlert_CancelledContext(t *testing.T) {
	conn := runServer(t)
	p := NewAlertPublisher(conn, "transport.alerts")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.PublishAlert(ctx, &domain.AlertEvent{ID: "a1", VehicleID: "BUS-07", Kind: domain.AlertExit})
	assert.ErrorIs(t, err, context.Canceled)
}

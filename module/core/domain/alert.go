package domain

import (
	"strconv"
	"time"
)

type AlertKind string

const (
	AlertEnter AlertKind = "enter"
	AlertExit  AlertKind = "exit"
	AlertSpeed AlertKind = "speed"
)

// AlertEvent is emitted once per detected transition or speeding fix.
// ZoneID is empty for speed alerts; Value carries the speed for them.
// Seq numbers the accepted fix the event came from, so two fixes sharing a
// timestamp still produce distinct events.
type AlertEvent struct {
	ID        string
	VehicleID string
	ZoneID    string
	ZoneName  string
	Kind      AlertKind
	Message   string
	Timestamp time.Time
	Value     *float64
	Seq       uint64
}

// Key identifies the transition an event was produced for. Two events with
// the same key describe the same occurrence.
func (e *AlertEvent) Key() string {
	return e.VehicleID + "|" + e.ZoneID + "|" + string(e.Kind) + "|" +
		e.Timestamp.UTC().Format(time.RFC3339Nano) + "|" + strconv.FormatUint(e.Seq, 10)
}

package main

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

type fixMessage struct {
	VehicleID string   `json:"vehicleId"`
	Lat       float64  `json:"lat"`
	Lon       float64  `json:"lon"`
	Speed     float64  `json:"speed"`
	Heading   *float64 `json:"heading,omitempty"`
	Timestamp int64    `json:"timestamp"`
	FuelLevel *float64 `json:"fuelLevel,omitempty"`
}

// school gate used by the sample zones file
const (
	schoolLat = -1.2864
	schoolLon = 36.8172
)

type bus struct {
	id      string
	angle   float64 // position on the loop around the school, radians
	fuel    float64
	heading float64
}

// step moves the bus around a 1km-radius loop that cuts through the school
// zone, so enter and exit alerts fire regularly.
func (b *bus) step() fixMessage {
	b.angle += 0.15 + rand.Float64()*0.1
	radius := 0.009 // ~1km in degrees
	lat := schoolLat + 0.007 + radius*math.Sin(b.angle)
	lon := schoolLon + radius*math.Cos(b.angle)
	b.heading = math.Mod(b.angle*180/math.Pi+90, 360)
	b.fuel -= rand.Float64() * 0.2
	if b.fuel < 5 {
		b.fuel = 100
	}

	speed := 20 + rand.Float64()*50
	// roughly one in ten fixes is over the default 80 km/h limit
	if rand.Float64() < 0.1 {
		speed = 85 + rand.Float64()*20
	}

	heading, fuel := b.heading, b.fuel
	return fixMessage{
		VehicleID: b.id,
		Lat:       lat,
		Lon:       lon,
		Speed:     speed,
		Heading:   &heading,
		Timestamp: time.Now().Unix(),
		FuelLevel: &fuel,
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("school-bus-mock-publisher")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	fleet := make([]*bus, 5)
	for i := range fleet {
		fleet[i] = &bus{
			id:    fmt.Sprintf("BUS-%02d", i+1),
			angle: rand.Float64() * 2 * math.Pi,
			fuel:  60 + rand.Float64()*40,
		}
	}

	log.Infof("connected to %s, publishing every %ds for %d buses", broker, intervalSec, len(fleet))

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		for _, b := range fleet {
			msg := b.step()
			payload, _ := json.Marshal(msg)
			topic := fmt.Sprintf("/school/bus/%s/location", b.id)

			token := client.Publish(topic, 1, false, payload)
			token.Wait()

			log.Debugf("published to %s: %s", topic, payload)
		}
	}
}

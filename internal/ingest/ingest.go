// Package ingest subscribes to the MQTT event topics and writes incoming
// fuel and maintenance events to the store. Malformed payloads are counted
// and dropped; validation of numeric fields is the engine's concern at read
// time, so events are stored as received.
package ingest

import (
	"context"
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/garagelog/internal/db"
	"github.com/ukydev/garagelog/internal/metrics"
	"github.com/ukydev/garagelog/internal/models"
)

const (
	TopicFuel        = "garagelog/events/fuel"
	TopicMaintenance = "garagelog/events/maintenance"
)

const storeTimeout = 10 * time.Second

// Subscriber consumes event topics into the event store.
type Subscriber struct {
	client mqtt.Client
	fuel   db.FuelEventCollection
	maint  db.MaintenanceEventCollection
}

// NewSubscriber connects to the broker and returns a subscriber ready to start.
func NewSubscriber(brokerURL, clientID string, fuel db.FuelEventCollection, maint db.MaintenanceEventCollection) (*Subscriber, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &Subscriber{client: client, fuel: fuel, maint: maint}, nil
}

// Start subscribes to both event topics.
func (s *Subscriber) Start() error {
	if token := s.client.Subscribe(TopicFuel, 1, s.handleFuel); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	if token := s.client.Subscribe(TopicMaintenance, 1, s.handleMaintenance); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.WithFields(log.Fields{
		"topics": []string{TopicFuel, TopicMaintenance},
	}).Info("MQTT ingest started")
	return nil
}

// Stop disconnects from the broker.
func (s *Subscriber) Stop() {
	s.client.Disconnect(250)
}

func (s *Subscriber) handleFuel(_ mqtt.Client, msg mqtt.Message) {
	var event models.FuelEvent
	if err := json.Unmarshal(msg.Payload(), &event); err != nil {
		metrics.EventsRejected.WithLabelValues("decode").Inc()
		log.WithError(err).Warn("Dropping undecodable fuel event")
		return
	}
	if event.VehicleID == "" {
		metrics.EventsRejected.WithLabelValues("missing_vehicle").Inc()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if _, err := s.fuel.InsertFuelEvent(ctx, event); err != nil {
		metrics.EventsRejected.WithLabelValues("store").Inc()
		log.WithError(err).Error("Failed to store ingested fuel event")
		return
	}
	metrics.EventsIngested.WithLabelValues("fuel").Inc()
}

func (s *Subscriber) handleMaintenance(_ mqtt.Client, msg mqtt.Message) {
	var event models.MaintenanceEvent
	if err := json.Unmarshal(msg.Payload(), &event); err != nil {
		metrics.EventsRejected.WithLabelValues("decode").Inc()
		log.WithError(err).Warn("Dropping undecodable maintenance event")
		return
	}
	if event.VehicleID == "" {
		metrics.EventsRejected.WithLabelValues("missing_vehicle").Inc()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if _, err := s.maint.InsertMaintenanceEvent(ctx, event); err != nil {
		metrics.EventsRejected.WithLabelValues("store").Inc()
		log.WithError(err).Error("Failed to store ingested maintenance event")
		return
	}
	metrics.EventsIngested.WithLabelValues("maintenance").Inc()
}

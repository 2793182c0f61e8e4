package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

const (
	topicFuel        = "garagelog/events/fuel"
	topicMaintenance = "garagelog/events/maintenance"
)

// Vehicle mirrors the API's vehicle creation payload.
type Vehicle struct {
	Make            string  `json:"make"`
	Model           string  `json:"model"`
	Year            int     `json:"year"`
	CurrentOdometer float64 `json:"current_odometer"`
	Status          string  `json:"status"`
}

// FuelEvent mirrors the wire format consumed by the ingest topics.
type FuelEvent struct {
	VehicleID       string    `json:"vehicle_id"`
	Timestamp       time.Time `json:"timestamp"`
	Volume          float64   `json:"volume"`
	UnitCost        float64   `json:"unit_cost"`
	TotalCost       float64   `json:"total_cost"`
	OdometerReading float64   `json:"odometer_reading"`
	Note            string    `json:"note,omitempty"`
}

// MaintenanceEvent mirrors the wire format consumed by the ingest topics.
type MaintenanceEvent struct {
	VehicleID       string    `json:"vehicle_id"`
	ServiceKind     string    `json:"service_kind"`
	Description     string    `json:"description,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	OdometerReading float64   `json:"odometer_reading"`
	Cost            float64   `json:"cost"`
	PartsCost       float64   `json:"parts_cost"`
}

type message struct {
	topic   string
	payload []byte
}

var authToken string

func authorizedRequest(method, url string, body *bytes.Buffer) (*http.Response, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func createVehicle(apiURL string) (string, float64, error) {
	makes := []string{"Ford", "Chevrolet", "Toyota", "Honda", "BMW"}
	models := []string{"Focus", "Cruze", "Camry", "Civic", "320i"}

	odometer := 20000 + rand.Float64()*80000
	vehicle := Vehicle{
		Make:            makes[rand.Intn(len(makes))],
		Model:           models[rand.Intn(len(models))],
		Year:            2015 + rand.Intn(10),
		CurrentOdometer: odometer,
		Status:          "active",
	}

	data, err := json.Marshal(vehicle)
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal vehicle: %w", err)
	}

	resp, err := authorizedRequest(http.MethodPost, apiURL+"/vehicles", bytes.NewBuffer(data))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create vehicle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", 0, fmt.Errorf("vehicle creation failed with status: %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, fmt.Errorf("failed to decode response: %w", err)
	}

	vehicleID, ok := result["id"].(string)
	if !ok {
		return "", 0, fmt.Errorf("invalid vehicle ID in response")
	}

	log.WithFields(log.Fields{
		"vehicle_id": vehicleID,
		"make":       vehicle.Make,
		"model":      vehicle.Model,
		"odometer":   odometer,
	}).Info("Created vehicle")

	return vehicleID, odometer, nil
}

// buildHistory walks backwards from the vehicle's current odometer, emitting
// a fill-up roughly every 5-9 days and the occasional service. A small
// fraction of fuel events get a corrupted field, which the reporting engine
// is expected to tolerate.
func buildHistory(vehicleID string, currentOdometer float64, months int, malformedPct int) []message {
	var msgs []message

	now := time.Now().UTC()
	start := now.AddDate(0, -months, 0)
	odometer := currentOdometer - float64(months)*1200 - rand.Float64()*500
	if odometer < 0 {
		odometer = 0
	}

	serviceKinds := []string{"oil_change", "tire_rotation", "brake_service", "inspection"}

	t := start
	for t.Before(now) {
		t = t.Add(time.Duration(5+rand.Intn(5)) * 24 * time.Hour)
		if !t.Before(now) {
			break
		}
		distance := 150 + rand.Float64()*250
		odometer += distance
		if odometer > currentOdometer {
			odometer = currentOdometer
		}

		volume := distance/(9+rand.Float64()*5) + 2
		unitCost := 1.5 + rand.Float64()*0.6
		event := FuelEvent{
			VehicleID:       vehicleID,
			Timestamp:       t,
			Volume:          volume,
			UnitCost:        unitCost,
			TotalCost:       volume * unitCost,
			OdometerReading: odometer,
		}
		if rand.Intn(100) < malformedPct {
			corruptFuelEvent(&event)
		}

		data, err := json.Marshal(event)
		if err != nil {
			continue
		}
		msgs = append(msgs, message{topic: topicFuel, payload: data})

		// roughly one service per couple of months of driving
		if rand.Intn(10) == 0 {
			kind := serviceKinds[rand.Intn(len(serviceKinds))]
			cost := 40 + rand.Float64()*260
			service := MaintenanceEvent{
				VehicleID:       vehicleID,
				ServiceKind:     kind,
				Timestamp:       t.Add(6 * time.Hour),
				OdometerReading: odometer,
				Cost:            cost,
				PartsCost:       cost * (0.2 + rand.Float64()*0.4),
			}
			data, err := json.Marshal(service)
			if err != nil {
				continue
			}
			msgs = append(msgs, message{topic: topicMaintenance, payload: data})
		}
	}

	return msgs
}

func corruptFuelEvent(event *FuelEvent) {
	switch rand.Intn(3) {
	case 0:
		event.Volume = -event.Volume
	case 1:
		event.UnitCost = -1
		event.TotalCost = -1
	default:
		event.OdometerReading = 0
	}
	event.Note = "imported"
}

func main() {
	authToken = os.Getenv("SIM_AUTH_TOKEN")

	fleetSize := 5
	if val := os.Getenv("FLEET_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			fleetSize = n
		}
	}

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	brokerURL := os.Getenv("MQTT_BROKER_URL")
	if brokerURL == "" {
		brokerURL = "tcp://localhost:1883"
	}

	months := 6
	if v := os.Getenv("SIM_HISTORY_MONTHS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			months = n
		}
	}

	malformedPct := 5
	if v := os.Getenv("SIM_MALFORMED_PCT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 100 {
			malformedPct = n
		}
	}

	log.WithFields(log.Fields{
		"fleet_size":    fleetSize,
		"api_url":       apiURL,
		"broker_url":    brokerURL,
		"months":        months,
		"malformed_pct": malformedPct,
	}).Info("Starting history simulation")

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("garagelog-simulator").
		SetConnectTimeout(10 * time.Second)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.WithError(token.Error()).Fatal("Failed to connect to MQTT broker")
	}
	defer client.Disconnect(250)

	var history []message
	for i := 0; i < fleetSize; i++ {
		vehicleID, odometer, err := createVehicle(apiURL)
		if err != nil {
			log.WithError(err).Error("Failed to create vehicle")
			continue
		}
		history = append(history, buildHistory(vehicleID, odometer, months, malformedPct)...)
	}

	if len(history) == 0 {
		log.Error("No history generated. Ensure SIM_AUTH_TOKEN is valid and API is reachable. Exiting.")
		return
	}

	// Shuffled delivery exercises the server's order independence: reports
	// must come out the same no matter how the history arrives.
	rand.Shuffle(len(history), func(i, j int) {
		history[i], history[j] = history[j], history[i]
	})

	for _, msg := range history {
		if token := client.Publish(msg.topic, 1, false, msg.payload); token.Wait() && token.Error() != nil {
			log.WithError(token.Error()).Error("Failed to publish event")
		}
	}

	log.WithField("events", len(history)).Info("History published")
}

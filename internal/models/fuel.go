package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// FuelEvent represents a single logged fuel purchase for a vehicle.
// TotalCost is always recomputed server-side as round(Volume*UnitCost, 2);
// it is never trusted from the client.
type FuelEvent struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID       string             `json:"vehicle_id" bson:"vehicle_id"`
	Timestamp       time.Time          `json:"timestamp" bson:"timestamp"`
	Volume          float64            `json:"volume" bson:"volume"` // in liters
	UnitCost        float64            `json:"unit_cost" bson:"unit_cost"`
	TotalCost       float64            `json:"total_cost" bson:"total_cost"` // in USD
	OdometerReading float64            `json:"odometer_reading" bson:"odometer_reading"` // in kilometers
	Note            string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

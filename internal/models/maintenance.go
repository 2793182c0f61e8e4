package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// Known service kinds. Free-form kinds are accepted but only these drive
// the recurring-maintenance rules.
const (
	ServiceOilChange    = "oil_change"
	ServiceTireRotation = "tire_rotation"
	ServiceBrakeService = "brake_service"
	ServiceInspection   = "inspection"
)

// MaintenanceEvent represents a vehicle maintenance record.
type MaintenanceEvent struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID       string             `json:"vehicle_id" bson:"vehicle_id"`
	ServiceKind     string             `json:"service_kind" bson:"service_kind"` // "oil_change", "tire_rotation", "brake_service", "inspection", ...
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	Timestamp       time.Time          `json:"timestamp" bson:"timestamp"`
	OdometerReading float64            `json:"odometer_reading" bson:"odometer_reading"` // in kilometers
	Cost            float64            `json:"cost" bson:"cost"` // full invoice, in USD
	PartsCost       float64            `json:"parts_cost" bson:"parts_cost"` // portion of Cost spent on parts
	NextDueOdometer *float64           `json:"next_due_odometer,omitempty" bson:"next_due_odometer,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

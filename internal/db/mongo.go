package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ukydev/garagelog/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo connects to MongoDB at the given URI and verifies the
// connection with a ping. The URI comes from the config layer, which owns
// the default.
func ConnectMongo(uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Store is the MongoDB-backed event store. It implements the collection
// interfaces in this package and the engine's EventStore capability.
type Store struct {
	fuel     *mongo.Collection
	maint    *mongo.Collection
	vehicles *mongo.Collection
}

// NewStore wires the store to its collections in the given database.
func NewStore(database *mongo.Database) *Store {
	return &Store{
		fuel:     database.Collection("fuel_events"),
		maint:    database.Collection("maintenance_events"),
		vehicles: database.Collection("vehicles"),
	}
}

// InsertFuelEvent inserts a fuel event and returns its id.
func (s *Store) InsertFuelEvent(ctx context.Context, event models.FuelEvent) (string, error) {
	if s.fuel == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	res, err := s.fuel.InsertOne(ctx, event)
	if err != nil {
		return "", err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

// ListFuelEvents returns all fuel events for a vehicle, in storage order.
// Ordering is the engine's job, not the store's.
func (s *Store) ListFuelEvents(ctx context.Context, vehicleID string) ([]models.FuelEvent, error) {
	if s.fuel == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := s.fuel.Find(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.FuelEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// FindFuelEventByID finds a fuel event by its id.
func (s *Store) FindFuelEventByID(ctx context.Context, id string) (*models.FuelEvent, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event id", ErrNotFound)
	}
	var event models.FuelEvent
	err = s.fuel.FindOne(ctx, bson.M{"_id": objectID}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// UpdateFuelEvent replaces a fuel event by its id.
func (s *Store) UpdateFuelEvent(ctx context.Context, id string, event models.FuelEvent) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid event id", ErrNotFound)
	}
	event.ID = objectID
	event.UpdatedAt = time.Now()
	result, err := s.fuel.ReplaceOne(ctx, bson.M{"_id": objectID}, event)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFuelEvent deletes a fuel event by its id.
func (s *Store) DeleteFuelEvent(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid event id", ErrNotFound)
	}
	result, err := s.fuel.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertMaintenanceEvent inserts a maintenance event and returns its id.
func (s *Store) InsertMaintenanceEvent(ctx context.Context, event models.MaintenanceEvent) (string, error) {
	if s.maint == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	res, err := s.maint.InsertOne(ctx, event)
	if err != nil {
		return "", err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

// ListMaintenanceEvents returns all maintenance events for a vehicle.
func (s *Store) ListMaintenanceEvents(ctx context.Context, vehicleID string) ([]models.MaintenanceEvent, error) {
	if s.maint == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := s.maint.Find(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.MaintenanceEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteMaintenanceEvent deletes a maintenance event by its id.
func (s *Store) DeleteMaintenanceEvent(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid event id", ErrNotFound)
	}
	result, err := s.maint.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertVehicle inserts a vehicle and returns its id.
func (s *Store) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error) {
	if s.vehicles == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	vehicle.CreatedAt = time.Now()
	res, err := s.vehicles.InsertOne(ctx, vehicle)
	if err != nil {
		return "", err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

// GetVehicle finds a vehicle by its id.
func (s *Store) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	if s.vehicles == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid vehicle id", ErrNotFound)
	}
	var vehicle models.Vehicle
	err = s.vehicles.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// UpdateVehicleOdometer sets the authoritative current odometer reading.
func (s *Store) UpdateVehicleOdometer(ctx context.Context, id string, odometer float64) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid vehicle id", ErrNotFound)
	}
	result, err := s.vehicles.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{"current_odometer": odometer}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

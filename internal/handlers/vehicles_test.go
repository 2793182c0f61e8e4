package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/ukydev/garagelog/internal/db"
	"github.com/ukydev/garagelog/internal/models"
)

// MockVehicleCollection is a mock implementation of VehicleCollection
type MockVehicleCollection struct {
	mock.Mock
}

func (m *MockVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error) {
	args := m.Called(ctx, vehicle)
	return args.String(0), args.Error(1)
}

func (m *MockVehicleCollection) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) UpdateVehicleOdometer(ctx context.Context, id string, odometer float64) error {
	args := m.Called(ctx, id, odometer)
	return args.Error(0)
}

func TestCreateVehicle_DefaultsStatus(t *testing.T) {
	mockVehicles := new(MockVehicleCollection)
	handler := NewVehicleHandler(mockVehicles)

	mockVehicles.On("InsertVehicle", mock.Anything, mock.MatchedBy(func(v models.Vehicle) bool {
		return v.Make == "Toyota" && v.Status == "active"
	})).Return("veh-1", nil)

	payload, _ := json.Marshal(map[string]interface{}{
		"make":  "Toyota",
		"model": "Camry",
		"year":  2021,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/vehicles", bytes.NewBuffer(payload))
	rr := httptest.NewRecorder()
	handler.Create(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	mockVehicles.AssertExpectations(t)
}

func TestCreateVehicle_MissingMake(t *testing.T) {
	handler := NewVehicleHandler(new(MockVehicleCollection))

	payload, _ := json.Marshal(map[string]interface{}{"model": "Camry"})
	req := httptest.NewRequest(http.MethodPost, "/api/vehicles", bytes.NewBuffer(payload))
	rr := httptest.NewRecorder()
	handler.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetVehicle_NotFound(t *testing.T) {
	mockVehicles := new(MockVehicleCollection)
	handler := NewVehicleHandler(mockVehicles)

	mockVehicles.On("GetVehicle", mock.Anything, "missing").Return(nil, db.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles/missing", nil)
	req.SetPathValue("id", "missing")
	rr := httptest.NewRecorder()
	handler.Get(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateOdometer_RejectsNegative(t *testing.T) {
	mockVehicles := new(MockVehicleCollection)
	handler := NewVehicleHandler(mockVehicles)

	payload, _ := json.Marshal(map[string]interface{}{"current_odometer": -100.0})
	req := httptest.NewRequest(http.MethodPut, "/api/vehicles/veh-1/odometer", bytes.NewBuffer(payload))
	req.SetPathValue("id", "veh-1")
	rr := httptest.NewRecorder()
	handler.UpdateOdometer(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockVehicles.AssertNotCalled(t, "UpdateVehicleOdometer", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOdometer_Valid(t *testing.T) {
	mockVehicles := new(MockVehicleCollection)
	handler := NewVehicleHandler(mockVehicles)

	mockVehicles.On("UpdateVehicleOdometer", mock.Anything, "veh-1", 52000.0).Return(nil)

	payload, _ := json.Marshal(map[string]interface{}{"current_odometer": 52000.0})
	req := httptest.NewRequest(http.MethodPut, "/api/vehicles/veh-1/odometer", bytes.NewBuffer(payload))
	req.SetPathValue("id", "veh-1")
	rr := httptest.NewRecorder()
	handler.UpdateOdometer(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockVehicles.AssertExpectations(t)
}

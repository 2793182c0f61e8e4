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

// MockFuelEventCollection is a mock implementation of FuelEventCollection
type MockFuelEventCollection struct {
	mock.Mock
}

func (m *MockFuelEventCollection) InsertFuelEvent(ctx context.Context, event models.FuelEvent) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

func (m *MockFuelEventCollection) ListFuelEvents(ctx context.Context, vehicleID string) ([]models.FuelEvent, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FuelEvent), args.Error(1)
}

func (m *MockFuelEventCollection) FindFuelEventByID(ctx context.Context, id string) (*models.FuelEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FuelEvent), args.Error(1)
}

func (m *MockFuelEventCollection) UpdateFuelEvent(ctx context.Context, id string, event models.FuelEvent) error {
	args := m.Called(ctx, id, event)
	return args.Error(0)
}

func (m *MockFuelEventCollection) DeleteFuelEvent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMaintenanceEventCollection is a mock implementation of MaintenanceEventCollection
type MockMaintenanceEventCollection struct {
	mock.Mock
}

func (m *MockMaintenanceEventCollection) InsertMaintenanceEvent(ctx context.Context, event models.MaintenanceEvent) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

func (m *MockMaintenanceEventCollection) ListMaintenanceEvents(ctx context.Context, vehicleID string) ([]models.MaintenanceEvent, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceEvent), args.Error(1)
}

func (m *MockMaintenanceEventCollection) DeleteMaintenanceEvent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newFuelRequest(t *testing.T, method, target, vehicleID string, body interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewBuffer(data))
	req.SetPathValue("id", vehicleID)
	return req
}

func TestCreateFuelEvent_RecomputesTotalCost(t *testing.T) {
	mockFuel := new(MockFuelEventCollection)
	handler := NewEventHandler(mockFuel, nil)

	// client-supplied total is wrong on purpose
	payload := map[string]interface{}{
		"volume":           40.0,
		"unit_cost":        1.75,
		"total_cost":       9999.0,
		"odometer_reading": 50000.0,
	}

	mockFuel.On("InsertFuelEvent", mock.Anything, mock.MatchedBy(func(e models.FuelEvent) bool {
		return e.VehicleID == "veh-1" && e.TotalCost == 70.0 && !e.Timestamp.IsZero()
	})).Return("abc123", nil)

	req := newFuelRequest(t, http.MethodPost, "/api/vehicles/veh-1/fuel", "veh-1", payload)
	rr := httptest.NewRecorder()
	handler.CreateFuelEvent(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "abc123", resp["id"])
	mockFuel.AssertExpectations(t)
}

func TestCreateFuelEvent_InvalidJSON(t *testing.T) {
	handler := NewEventHandler(new(MockFuelEventCollection), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/vehicles/veh-1/fuel", bytes.NewBufferString("{bad json"))
	req.SetPathValue("id", "veh-1")
	rr := httptest.NewRecorder()
	handler.CreateFuelEvent(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateFuelEvent_NotFound(t *testing.T) {
	mockFuel := new(MockFuelEventCollection)
	handler := NewEventHandler(mockFuel, nil)

	mockFuel.On("FindFuelEventByID", mock.Anything, "missing").Return(nil, db.ErrNotFound)

	req := newFuelRequest(t, http.MethodPut, "/api/fuel/missing", "missing", map[string]interface{}{"volume": 40.0})
	rr := httptest.NewRecorder()
	handler.UpdateFuelEvent(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	mockFuel.AssertExpectations(t)
}

func TestUpdateFuelEvent_PreservesVehicleID(t *testing.T) {
	mockFuel := new(MockFuelEventCollection)
	handler := NewEventHandler(mockFuel, nil)

	existing := &models.FuelEvent{VehicleID: "veh-1"}
	mockFuel.On("FindFuelEventByID", mock.Anything, "evt-1").Return(existing, nil)
	mockFuel.On("UpdateFuelEvent", mock.Anything, "evt-1", mock.MatchedBy(func(e models.FuelEvent) bool {
		return e.VehicleID == "veh-1" && e.TotalCost == 51.0
	})).Return(nil)

	payload := map[string]interface{}{
		"vehicle_id": "someone-else",
		"volume":     30.0,
		"unit_cost":  1.7,
	}
	req := newFuelRequest(t, http.MethodPut, "/api/fuel/evt-1", "evt-1", payload)
	rr := httptest.NewRecorder()
	handler.UpdateFuelEvent(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockFuel.AssertExpectations(t)
}

func TestListFuelEvents_EmptyIsNotNull(t *testing.T) {
	mockFuel := new(MockFuelEventCollection)
	handler := NewEventHandler(mockFuel, nil)

	mockFuel.On("ListFuelEvents", mock.Anything, "veh-1").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles/veh-1/fuel", nil)
	req.SetPathValue("id", "veh-1")
	rr := httptest.NewRecorder()
	handler.ListFuelEvents(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())
}

func TestCreateMaintenanceEvent_RequiresServiceKind(t *testing.T) {
	mockMaint := new(MockMaintenanceEventCollection)
	handler := NewEventHandler(nil, mockMaint)

	req := newFuelRequest(t, http.MethodPost, "/api/vehicles/veh-1/maintenance", "veh-1",
		map[string]interface{}{"cost": 120.0})
	rr := httptest.NewRecorder()
	handler.CreateMaintenanceEvent(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockMaint.AssertNotCalled(t, "InsertMaintenanceEvent", mock.Anything, mock.Anything)
}

func TestCreateMaintenanceEvent_Valid(t *testing.T) {
	mockMaint := new(MockMaintenanceEventCollection)
	handler := NewEventHandler(nil, mockMaint)

	mockMaint.On("InsertMaintenanceEvent", mock.Anything, mock.MatchedBy(func(e models.MaintenanceEvent) bool {
		return e.VehicleID == "veh-1" && e.ServiceKind == models.ServiceOilChange
	})).Return("m1", nil)

	payload := map[string]interface{}{
		"service_kind":     "oil_change",
		"odometer_reading": 48000.0,
		"cost":             85.0,
		"parts_cost":       30.0,
	}
	req := newFuelRequest(t, http.MethodPost, "/api/vehicles/veh-1/maintenance", "veh-1", payload)
	rr := httptest.NewRecorder()
	handler.CreateMaintenanceEvent(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	mockMaint.AssertExpectations(t)
}

func TestDeleteMaintenanceEvent_NotFound(t *testing.T) {
	mockMaint := new(MockMaintenanceEventCollection)
	handler := NewEventHandler(nil, mockMaint)

	mockMaint.On("DeleteMaintenanceEvent", mock.Anything, "missing").Return(db.ErrNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/maintenance/missing", nil)
	req.SetPathValue("id", "missing")
	rr := httptest.NewRecorder()
	handler.DeleteMaintenanceEvent(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

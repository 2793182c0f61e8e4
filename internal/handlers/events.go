package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/ukydev/garagelog/internal/db"
	"github.com/ukydev/garagelog/internal/models"
)

// EventHandler handles fuel and maintenance event requests.
type EventHandler struct {
	fuel  db.FuelEventCollection
	maint db.MaintenanceEventCollection
}

// NewEventHandler creates a new event handler.
func NewEventHandler(fuel db.FuelEventCollection, maint db.MaintenanceEventCollection) *EventHandler {
	return &EventHandler{fuel: fuel, maint: maint}
}

// CreateFuelEvent logs a fuel purchase for a vehicle. The stored total cost
// is always recomputed from volume and unit cost; client-supplied totals are
// ignored so the invariant cannot drift.
func (h *EventHandler) CreateFuelEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := decodeFuelEvent(w, r)
	if !ok {
		return
	}
	event.VehicleID = r.PathValue("id")

	id, err := h.fuel.InsertFuelEvent(r.Context(), event)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateFuelEvent edits a fuel event, recomputing its total cost.
func (h *EventHandler) UpdateFuelEvent(w http.ResponseWriter, r *http.Request) {
	existing, err := h.fuel.FindFuelEventByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	event, ok := decodeFuelEvent(w, r)
	if !ok {
		return
	}
	event.VehicleID = existing.VehicleID
	event.CreatedAt = existing.CreatedAt

	if err := h.fuel.UpdateFuelEvent(r.Context(), r.PathValue("id"), event); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Fuel event updated"})
}

// DeleteFuelEvent removes a fuel event.
func (h *EventHandler) DeleteFuelEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.fuel.DeleteFuelEvent(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Fuel event deleted"})
}

// ListFuelEvents returns a vehicle's raw fuel event log. Malformed events
// are included here; only aggregates exclude them.
func (h *EventHandler) ListFuelEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.fuel.ListFuelEvents(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if events == nil {
		events = []models.FuelEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

// CreateMaintenanceEvent logs a maintenance record for a vehicle.
func (h *EventHandler) CreateMaintenanceEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var event models.MaintenanceEvent
	if err := json.Unmarshal(body, &event); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if event.ServiceKind == "" {
		http.Error(w, "Service kind is required", http.StatusBadRequest)
		return
	}
	event.VehicleID = r.PathValue("id")
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	id, err := h.maint.InsertMaintenanceEvent(r.Context(), event)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ListMaintenanceEvents returns a vehicle's raw maintenance log.
func (h *EventHandler) ListMaintenanceEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.maint.ListMaintenanceEvents(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if events == nil {
		events = []models.MaintenanceEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

// DeleteMaintenanceEvent removes a maintenance event.
func (h *EventHandler) DeleteMaintenanceEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.maint.DeleteMaintenanceEvent(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Maintenance event deleted"})
}

// decodeFuelEvent reads and validates the shared fuel event payload.
func decodeFuelEvent(w http.ResponseWriter, r *http.Request) (models.FuelEvent, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return models.FuelEvent{}, false
	}

	var event models.FuelEvent
	if err := json.Unmarshal(body, &event); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return models.FuelEvent{}, false
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.TotalCost = roundCurrency(event.Volume * event.UnitCost)
	return event, true
}

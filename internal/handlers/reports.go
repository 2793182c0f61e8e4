package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ukydev/garagelog/internal/engine"
	"github.com/ukydev/garagelog/internal/metrics"
)

// ReportHandler exposes the aggregation engine over HTTP. The current time
// is read exactly once per request at this boundary and threaded into the
// engine, which never touches the clock itself.
type ReportHandler struct {
	engine       *engine.Engine
	defaultLimit int
}

// NewReportHandler creates a new report handler.
func NewReportHandler(eng *engine.Engine, defaultActivityLimit int) *ReportHandler {
	return &ReportHandler{engine: eng, defaultLimit: defaultActivityLimit}
}

// Report returns the full dashboard report for a vehicle.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.engine.ComputeReport(r.Context(), r.PathValue("id"), time.Now().UTC())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	metrics.ReportsComputed.Inc()
	writeJSON(w, http.StatusOK, report)
}

// Tasks returns the vehicle's upcoming maintenance tasks.
func (h *ReportHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.engine.ComputeUpcomingTasks(r.Context(), r.PathValue("id"), time.Now().UTC())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if tasks == nil {
		tasks = []engine.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Activities returns the vehicle's merged activity feed, newest first.
func (h *ReportHandler) Activities(w http.ResponseWriter, r *http.Request) {
	limit := h.defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	activities, err := h.engine.ComputeRecentActivities(r.Context(), r.PathValue("id"), time.Now().UTC(), limit)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if activities == nil {
		activities = []engine.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

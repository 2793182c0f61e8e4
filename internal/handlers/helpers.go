package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/garagelog/internal/db"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// writeStoreError maps store failures to HTTP statuses: unknown ids are 404,
// everything else is a 500.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	log.WithError(err).Error("Store operation failed")
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// roundCurrency rounds to cents for stored money amounts.
func roundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

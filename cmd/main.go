package main

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/garagelog/internal/auth"
	"github.com/ukydev/garagelog/internal/config"
	"github.com/ukydev/garagelog/internal/db"
	"github.com/ukydev/garagelog/internal/engine"
	"github.com/ukydev/garagelog/internal/handlers"
	"github.com/ukydev/garagelog/internal/ingest"
	"github.com/ukydev/garagelog/internal/metrics"
	"github.com/ukydev/garagelog/internal/middleware"
	"github.com/ukydev/garagelog/internal/models"
)

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func main() {
	cfg := config.Load()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetFormatter(&log.JSONFormatter{})

	client, err := db.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	log.Info("Connected to MongoDB")

	database := client.Database(cfg.MongoDB)
	store := db.NewStore(database)
	users := db.NewUserStore(database)

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	eng := engine.New(store)

	authHandler := handlers.NewAuthHandler(authService, users)
	vehicleHandler := handlers.NewVehicleHandler(store)
	eventHandler := handlers.NewEventHandler(store, store)
	reportHandler := handlers.NewReportHandler(eng, cfg.ActivityFeedLimit)

	mux := http.NewServeMux()
	perm := func(action string, h http.HandlerFunc) http.Handler {
		return authMiddleware.RequirePermission(action)(h)
	}

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/profile", authHandler.GetProfile)
	mux.HandleFunc("PUT /api/auth/profile", authHandler.UpdateProfile)
	mux.HandleFunc("POST /api/auth/change-password", authHandler.ChangePassword)

	mux.Handle("POST /api/vehicles", perm(models.ActionManageVehicles, vehicleHandler.Create))
	mux.Handle("GET /api/vehicles/{id}", perm(models.ActionViewVehicles, vehicleHandler.Get))
	mux.Handle("PUT /api/vehicles/{id}/odometer", perm(models.ActionManageVehicles, vehicleHandler.UpdateOdometer))

	mux.Handle("POST /api/vehicles/{id}/fuel", perm(models.ActionLogEvents, eventHandler.CreateFuelEvent))
	mux.Handle("GET /api/vehicles/{id}/fuel", perm(models.ActionViewVehicles, eventHandler.ListFuelEvents))
	mux.Handle("PUT /api/fuel/{id}", perm(models.ActionLogEvents, eventHandler.UpdateFuelEvent))
	mux.Handle("DELETE /api/fuel/{id}", perm(models.ActionLogEvents, eventHandler.DeleteFuelEvent))

	mux.Handle("POST /api/vehicles/{id}/maintenance", perm(models.ActionLogEvents, eventHandler.CreateMaintenanceEvent))
	mux.Handle("GET /api/vehicles/{id}/maintenance", perm(models.ActionViewVehicles, eventHandler.ListMaintenanceEvents))
	mux.Handle("DELETE /api/maintenance/{id}", perm(models.ActionLogEvents, eventHandler.DeleteMaintenanceEvent))

	mux.Handle("GET /api/vehicles/{id}/report", perm(models.ActionViewReports, reportHandler.Report))
	mux.Handle("GET /api/vehicles/{id}/tasks", perm(models.ActionViewReports, reportHandler.Tasks))
	mux.Handle("GET /api/vehicles/{id}/activities", perm(models.ActionViewReports, reportHandler.Activities))

	mux.HandleFunc("GET /health", healthHandler)
	mux.Handle("GET /metrics", metrics.Handler())

	if cfg.MQTTBrokerURL != "" {
		sub, err := ingest.NewSubscriber(cfg.MQTTBrokerURL, cfg.MQTTClientID, store, store)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to MQTT broker")
		}
		if err := sub.Start(); err != nil {
			log.WithError(err).Fatal("Failed to subscribe to event topics")
		}
		defer sub.Stop()
	}

	handler := middleware.Metrics(
		rateLimiter.RateLimit(100, 60)(
			authMiddleware.Authenticate(mux)))

	log.WithField("port", cfg.Port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}

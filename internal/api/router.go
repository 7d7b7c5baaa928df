package api

import (
	"bus-planning-service/internal/api/handlers"
	"bus-planning-service/internal/platform/obs"
	"bus-planning-service/internal/ports"
	"bus-planning-service/internal/services"
	"bus-planning-service/internal/viz"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	session *services.Session,
	geocoder ports.Geocoder,
	scorer ports.RouteScorer,
	repo ports.RouteRepository,
	display *viz.DisplayList,
) http.Handler {
	obs.RegisterMetrics()

	mux := http.NewServeMux()

	batchHandler := &handlers.BatchHandler{Session: session}
	planHandler := &handlers.PlanHandler{
		Session:  session,
		Geocoder: geocoder,
		Scorer:   scorer,
		Display:  display,
	}
	routeHandler := &handlers.RouteHandler{Session: session, Repo: repo}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("/api/batch", batchHandler.Batch)
	mux.HandleFunc("/api/batch/vehicles", batchHandler.Vehicles)
	mux.HandleFunc("/api/batch/vehicles/", batchHandler.VehicleByID)

	mux.HandleFunc("/api/plan", planHandler.Plan)
	mux.HandleFunc("/api/plan/select", planHandler.Select)
	mux.HandleFunc("/api/plan/display", planHandler.DisplayState)

	mux.HandleFunc("/api/routes", routeHandler.Routes)
	mux.HandleFunc("/api/schedules", routeHandler.Schedules)

	return loggingMiddleware(mux)
}

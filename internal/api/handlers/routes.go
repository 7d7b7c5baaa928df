package handlers

import (
	"bus-planning-service/internal/api/dto"
	"bus-planning-service/internal/ports"
	"bus-planning-service/internal/services"
	"log"
	"net/http"
	"time"
)

type RouteHandler struct {
	Session *services.Session
	Repo    ports.RouteRepository
}

// Routes saves the selected alternative for one vehicle (POST) or lists
// everything saved so far (GET).
func (h *RouteHandler) Routes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.save(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *RouteHandler) save(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveRouteRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	// The full payload is captured here, before any I/O, so browsing
	// or reselecting during the save cannot change what gets written.
	in, err := h.Session.CommitSnapshot(req.BusIndex)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}

	result, err := services.CommitRoute(r.Context(), in, h.Repo)
	if err != nil {
		log.Printf("commit route failed: bus=%q err=%v", in.Label, err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	res := dto.SaveRouteResponse{
		RouteID:        result.RouteID,
		Recommendation: toRecommendation(result.Recommendation),
	}
	if result.Schedule != nil {
		res.Schedule = &dto.ScheduleTimesResponse{
			FirstDeparture: result.Schedule.FirstDeparture,
			LastDeparture:  result.Schedule.LastDeparture,
			TotalTrips:     result.Schedule.TotalTrips,
			DepartureTimes: result.Schedule.DepartureTimes,
		}
	}

	writeJSON(w, r, http.StatusCreated, res)
}

func (h *RouteHandler) list(w http.ResponseWriter, r *http.Request) {
	routes, err := h.Repo.ListRoutes(r.Context())
	if err != nil {
		log.Printf("list routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.SavedRouteResponse, 0, len(routes))}
	for _, rt := range routes {
		res.Routes = append(res.Routes, dto.SavedRouteResponse{
			RouteID:       rt.RouteID,
			BusID:         rt.BusID,
			BusNumber:     rt.BusNumber,
			RouteIndex:    rt.RouteIndex,
			SourceName:    rt.SourceName,
			DestName:      rt.DestName,
			SourceLat:     rt.Source.Lat,
			SourceLng:     rt.Source.Lng,
			DestLat:       rt.Destination.Lat,
			DestLng:       rt.Destination.Lng,
			Waypoints:     toPath(rt.Waypoints),
			DistanceKm:    rt.DistanceKm,
			DurationMin:   rt.DurationMin,
			GeminiScore:   rt.GeminiScore,
			TrafficScore:  rt.TrafficScore,
			Reasoning:     rt.Reasoning,
			PeakHour:      string(rt.PeakPeriod),
			ExpectedDaily: rt.ExpectedDaily,
			CreatedAt:     rt.CreatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Schedules lists the generated departure cadences.
func (h *RouteHandler) Schedules(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	schedules, err := h.Repo.ListSchedules(r.Context())
	if err != nil {
		log.Printf("list schedules failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListSchedulesResponse{Schedules: make([]dto.SavedScheduleResponse, 0, len(schedules))}
	for _, sc := range schedules {
		res.Schedules = append(res.Schedules, dto.SavedScheduleResponse{
			ScheduleID:     sc.ScheduleID,
			RouteID:        sc.RouteID,
			BusNumber:      sc.BusNumber,
			PeakHour:       string(sc.PeakPeriod),
			FrequencyMin:   sc.FrequencyMin,
			BusesNeeded:    sc.BusesNeeded,
			FirstDeparture: sc.FirstDeparture,
			LastDeparture:  sc.LastDeparture,
			TotalTrips:     sc.TotalTrips,
			DepartureTimes: sc.DepartureTimes,
			CreatedAt:      sc.CreatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

package handlers

import (
	"bus-planning-service/internal/api/dto"
	"bus-planning-service/internal/domain"
	"bus-planning-service/internal/platform/obs"
	"bus-planning-service/internal/ports"
	"bus-planning-service/internal/services"
	"bus-planning-service/internal/viz"
	"errors"
	"log"
	"net/http"
)

type PlanHandler struct {
	Session  *services.Session
	Geocoder ports.Geocoder
	Scorer   ports.RouteScorer
	Display  *viz.DisplayList
}

// Plan submits the whole batch for planning: resolve addresses, call
// the scoring service once, redraw the shared display. A submit while a
// run is in flight is rejected rather than queued.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	summary, err := h.Session.Plan(r.Context(), h.Geocoder, h.Scorer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlanInFlight):
			obs.PlanningRuns.WithLabelValues("rejected_in_flight").Inc()
			writeError(w, r, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrNothingToPlan):
			obs.PlanningRuns.WithLabelValues("nothing_resolved").Inc()
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		default:
			obs.PlanningRuns.WithLabelValues("failed").Inc()
			log.Printf("plan batch failed: %v", err)
			writeError(w, r, http.StatusBadGateway, err.Error())
		}
		return
	}

	obs.PlanningRuns.WithLabelValues("ok").Inc()

	res := dto.PlanResponse{
		RequestedCount: summary.RequestedCount,
		ResolvedCount:  summary.ResolvedCount,
		Results:        make([]dto.PlanningResultResponse, 0, len(summary.Results)),
	}
	for _, pr := range summary.Results {
		res.Results = append(res.Results, toPlanningResult(pr))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Select switches one vehicle's selected alternative and returns the
// refreshed fleet recommendation for it.
func (h *PlanHandler) Select(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SelectRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	update, err := h.Session.Select(req.BusIndex, req.RouteIndex)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}

	res := dto.SelectResponse{
		Result:              toPlanningResult(update.Result),
		Recommendation:      toRecommendation(update.Recommendation),
		RecommendationIssue: update.RecommendationIssue,
	}

	writeJSON(w, r, http.StatusOK, res)
}

// DisplayState serves the current drawn-elements list for the map to render.
func (h *PlanHandler) DisplayState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	center, zoom, initialized := h.Display.View()

	res := dto.DisplayResponse{
		Initialized: initialized,
		Center:      center.CoordsToList(),
		Zoom:        zoom,
		Polylines:   []dto.PolylineResponse{},
	}
	for _, p := range h.Display.Elements() {
		res.Polylines = append(res.Polylines, dto.PolylineResponse{
			Path:    toPath(p.Path),
			Color:   p.Color,
			Weight:  p.Weight,
			Opacity: p.Opacity,
			ZIndex:  p.ZIndex,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toPlanningResult(pr domain.PlanningResult) dto.PlanningResultResponse {
	out := dto.PlanningResultResponse{
		BusID:         pr.VehicleID,
		BusNumber:     pr.Label,
		Color:         pr.Color,
		Source:        pr.Source.CoordsToList(),
		Destination:   pr.Destination.CoordsToList(),
		PeakHour:      string(pr.PeakPeriod),
		SelectedIndex: pr.SelectedIndex,
		Routes:        make([]dto.AlternativeResponse, 0, len(pr.Alternatives)),
	}
	for _, a := range pr.Alternatives {
		out.Routes = append(out.Routes, dto.AlternativeResponse{
			RouteIndex:   a.Index,
			DistanceKm:   a.DistanceKm,
			DurationMin:  a.DurationMin,
			Waypoints:    toPath(a.Waypoints),
			GeminiScore:  a.GeminiScore,
			TrafficScore: a.TrafficScore,
			Reasoning:    a.Reasoning,
			Rank:         a.Rank,
		})
	}
	return out
}

func toRecommendation(rec *services.FleetRecommendation) *dto.RecommendationResponse {
	if rec == nil {
		return nil
	}
	return &dto.RecommendationResponse{
		DailyPassengers:    rec.DailyPassengers,
		RoundTripMinutes:   rec.RoundTripMinutes,
		TripsNeeded:        rec.TripsNeeded,
		TripsPerVehicle:    rec.TripsPerVehicle,
		VehiclesNeeded:     rec.VehiclesNeeded,
		FrequencyMinutes:   rec.FrequencyMinutes,
		TotalTripsPerDay:   rec.TotalTripsPerDay,
		TotalDailyCapacity: rec.TotalDailyCapacity,
		UtilizationPercent: rec.UtilizationPercent,

		VehicleCapacity:        rec.VehicleCapacity,
		OperatingWindowMinutes: rec.OperatingWindowMinutes,
		LayoverMinutes:         rec.LayoverMinutes,
	}
}

func toPath(path []domain.Coordinates) [][]float64 {
	out := make([][]float64, 0, len(path))
	for _, c := range path {
		out = append(out, c.CoordsToList())
	}
	return out
}

package handlers

import (
	"bus-planning-service/internal/api/dto"
	"bus-planning-service/internal/domain"
	"bus-planning-service/internal/services"
	"net/http"
	"strings"
)

type BatchHandler struct {
	Session *services.Session
}

// Batch serves the current vehicle list.
func (h *BatchHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, toVehicleList(h.Session.Vehicles()))
}

// Vehicles appends a new vehicle to the batch.
func (h *BatchHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	v, err := h.Session.AddVehicle()
	if err != nil {
		writeError(w, r, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, r, http.StatusCreated, toVehicle(v))
}

// VehicleByID handles field updates and removal of one vehicle,
// addressed by the identifier in the path.
func (h *BatchHandler) VehicleByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/batch/vehicles/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		h.update(w, r, id)
	case http.MethodDelete:
		h.remove(w, r, id)
	default:
		w.Header().Set("Allow", "PATCH, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *BatchHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req dto.UpdateVehicleRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	patch := services.VehiclePatch{
		Label:              req.Label,
		Source:             req.Source,
		Destination:        req.Destination,
		ExpectedPassengers: req.ExpectedPassengers,
	}
	if req.PeakHour != nil {
		p := domain.PeakPeriod(*req.PeakHour)
		patch.PeakPeriod = &p
	}

	v, err := h.Session.UpdateVehicle(id, patch)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, toVehicle(v))
}

func (h *BatchHandler) remove(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Session.RemoveVehicle(id); err != nil {
		writeError(w, r, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"removed": id})
}

func toVehicle(v domain.PlannedVehicle) dto.VehicleResponse {
	out := dto.VehicleResponse{
		ID:                 v.ID,
		Label:              v.Label,
		Source:             v.Source,
		Destination:        v.Destination,
		PeakHour:           string(v.PeakPeriod),
		Color:              v.Color,
		ExpectedPassengers: v.ExpectedPassengers,
	}
	if v.SourceCoords != nil {
		c := v.SourceCoords.CoordsToList()
		out.SourceCoords = &c
	}
	if v.DestCoords != nil {
		c := v.DestCoords.CoordsToList()
		out.DestCoords = &c
	}
	return out
}

func toVehicleList(vs []domain.PlannedVehicle) dto.ListVehiclesResponse {
	out := dto.ListVehiclesResponse{Vehicles: make([]dto.VehicleResponse, 0, len(vs))}
	for _, v := range vs {
		out.Vehicles = append(out.Vehicles, toVehicle(v))
	}
	return out
}

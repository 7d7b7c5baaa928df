package dto

type VehicleResponse struct {
	ID                 string     `json:"id"`
	Label              string     `json:"bus_number"`
	Source             string     `json:"source"`
	Destination        string     `json:"destination"`
	SourceCoords       *[]float64 `json:"source_coords"`
	DestCoords         *[]float64 `json:"dest_coords"`
	PeakHour           string     `json:"peak_hour"`
	Color              string     `json:"color"`
	ExpectedPassengers int        `json:"expected_passengers_daily"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

// UpdateVehicleRequest is a partial update; absent fields are left
// untouched.
type UpdateVehicleRequest struct {
	Label              *string `json:"bus_number" validate:"omitempty,min=1,max=64"`
	Source             *string `json:"source" validate:"omitempty,max=256"`
	Destination        *string `json:"destination" validate:"omitempty,max=256"`
	PeakHour           *string `json:"peak_hour" validate:"omitempty,oneof=morning evening off-peak"`
	ExpectedPassengers *int    `json:"expected_passengers_daily" validate:"omitempty,gte=0"`
}

package dto

type SaveRouteRequest struct {
	BusIndex int `json:"bus_index" validate:"gte=0"`
}

type ScheduleTimesResponse struct {
	FirstDeparture string   `json:"first_departure"`
	LastDeparture  string   `json:"last_departure"`
	TotalTrips     int      `json:"total_trips"`
	DepartureTimes []string `json:"departure_times"`
}

type SaveRouteResponse struct {
	RouteID        string                  `json:"route_id"`
	Recommendation *RecommendationResponse `json:"frequency_recommendation"`
	Schedule       *ScheduleTimesResponse  `json:"schedule"`
}

type SavedRouteResponse struct {
	RouteID       string      `json:"route_id"`
	BusID         string      `json:"bus_id"`
	BusNumber     string      `json:"bus_number"`
	RouteIndex    int         `json:"route_index"`
	SourceName    string      `json:"source_name"`
	DestName      string      `json:"dest_name"`
	SourceLat     float64     `json:"source_lat"`
	SourceLng     float64     `json:"source_lng"`
	DestLat       float64     `json:"dest_lat"`
	DestLng       float64     `json:"dest_lng"`
	Waypoints     [][]float64 `json:"waypoints"`
	DistanceKm    float64     `json:"distance_km"`
	DurationMin   float64     `json:"duration_min"`
	GeminiScore   float64     `json:"gemini_score"`
	TrafficScore  float64     `json:"traffic_score"`
	Reasoning     string      `json:"reasoning"`
	PeakHour      string      `json:"peak_hour"`
	ExpectedDaily int         `json:"expected_passengers_daily"`
	CreatedAt     string      `json:"created_at"`
}

type ListRoutesResponse struct {
	Routes []SavedRouteResponse `json:"routes"`
}

type SavedScheduleResponse struct {
	ScheduleID     string   `json:"schedule_id"`
	RouteID        string   `json:"route_id"`
	BusNumber      string   `json:"bus_number"`
	PeakHour       string   `json:"peak_hour"`
	FrequencyMin   int      `json:"frequency_min"`
	BusesNeeded    int      `json:"buses_needed"`
	FirstDeparture string   `json:"first_departure"`
	LastDeparture  string   `json:"last_departure"`
	TotalTrips     int      `json:"total_trips"`
	DepartureTimes []string `json:"departure_times"`
	CreatedAt      string   `json:"created_at"`
}

type ListSchedulesResponse struct {
	Schedules []SavedScheduleResponse `json:"schedules"`
}

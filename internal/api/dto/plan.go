package dto

type AlternativeResponse struct {
	RouteIndex   int         `json:"route_index"`
	DistanceKm   float64     `json:"distance_km"`
	DurationMin  float64     `json:"duration_min"`
	Waypoints    [][]float64 `json:"waypoints"`
	GeminiScore  float64     `json:"gemini_score"`
	TrafficScore float64     `json:"traffic_score"`
	Reasoning    string      `json:"reasoning"`
	Rank         int         `json:"rank"`
}

type PlanningResultResponse struct {
	BusID         string                `json:"bus_id"`
	BusNumber     string                `json:"bus_number"`
	Color         string                `json:"color"`
	Source        []float64             `json:"source"`
	Destination   []float64             `json:"destination"`
	PeakHour      string                `json:"peak_hour"`
	SelectedIndex int                   `json:"selected_index"`
	Routes        []AlternativeResponse `json:"routes"`
}

type PlanResponse struct {
	RequestedCount int                      `json:"requested_count"`
	ResolvedCount  int                      `json:"resolved_count"`
	Results        []PlanningResultResponse `json:"results"`
}

type SelectRequest struct {
	BusIndex   int `json:"bus_index" validate:"gte=0"`
	RouteIndex int `json:"route_index" validate:"gte=0"`
}

type RecommendationResponse struct {
	DailyPassengers    int     `json:"daily_passengers"`
	RoundTripMinutes   float64 `json:"round_trip_min"`
	TripsNeeded        int     `json:"trips_needed"`
	TripsPerVehicle    int     `json:"trips_per_bus"`
	VehiclesNeeded     int     `json:"buses_needed"`
	FrequencyMinutes   int     `json:"frequency_min"`
	TotalTripsPerDay   int     `json:"total_trips_per_day"`
	TotalDailyCapacity int     `json:"total_daily_capacity"`
	UtilizationPercent float64 `json:"utilization_percent"`

	VehicleCapacity        int `json:"bus_capacity"`
	OperatingWindowMinutes int `json:"operating_window_min"`
	LayoverMinutes         int `json:"layover_min"`
}

type SelectResponse struct {
	Result              PlanningResultResponse  `json:"result"`
	Recommendation      *RecommendationResponse `json:"frequency_recommendation"`
	RecommendationIssue string                  `json:"recommendation_issue,omitempty"`
}

type PolylineResponse struct {
	Path    [][]float64 `json:"path"`
	Color   string      `json:"color"`
	Weight  int         `json:"weight"`
	Opacity float64     `json:"opacity"`
	ZIndex  int         `json:"z_index"`
}

type DisplayResponse struct {
	Initialized bool               `json:"initialized"`
	Center      []float64          `json:"center"`
	Zoom        int                `json:"zoom"`
	Polylines   []PolylineResponse `json:"polylines"`
}

package domain

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Return coordinates as [lat, lng] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lat, c.Lng} }

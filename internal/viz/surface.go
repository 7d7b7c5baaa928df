package viz

import "bus-planning-service/internal/domain"

// Surface is the drawing boundary the synchronizer renders onto. The
// core never reaches past these three operations into the renderer's
// internals.
type Surface interface {
	Initialize(center domain.Coordinates, zoom int)
	DrawPolyline(path []domain.Coordinates, color string, weight int, opacity float64, zIndex int)
	ClearAll()
}

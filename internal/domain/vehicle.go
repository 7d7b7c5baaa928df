package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Demand regime the external scorer uses to weight traffic conditions.
type PeakPeriod string

const (
	PeakMorning PeakPeriod = "morning"
	PeakEvening PeakPeriod = "evening"
	OffPeak     PeakPeriod = "off-peak"
)

func (p PeakPeriod) Valid() bool {
	switch p {
	case PeakMorning, PeakEvening, OffPeak:
		return true
	}
	return false
}

// MaxBatchVehicles is the hard cap on vehicles in one planning batch.
const MaxBatchVehicles = 20

// Palette supplies per-vehicle display colors, cycled when the batch
// outgrows it. Assignment is palette[count % len] at insertion time.
var Palette = []string{
	"#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#FF00FF", "#00FFFF",
	"#FFA500", "#800080", "#008000", "#FFC0CB", "#A52A2A", "#808080",
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8", "#F7DC6F",
	"#BB8FCE", "#85C1E2", "#F8B739", "#52B788",
}

// PlannedVehicle is one row the operator is configuring before submission.
// Coordinates stay nil until address resolution succeeds.
type PlannedVehicle struct {
	ID                 string
	Label              string
	Source             string
	Destination        string
	SourceCoords       *Coordinates
	DestCoords         *Coordinates
	PeakPeriod         PeakPeriod
	Color              string
	ExpectedPassengers int
}

// Batch aggregates the vehicles of one planning session.
// It holds between 1 and MaxBatchVehicles entries at all times.
type Batch struct {
	vehicles []*PlannedVehicle
}

// NewBatch starts a batch with one default vehicle, matching the
// operator console's initial state.
func NewBatch() *Batch {
	b := &Batch{}
	b.Add()
	return b
}

// Add appends a vehicle with a generated identifier, a "Bus N" label
// and the next palette color.
func (b *Batch) Add() (*PlannedVehicle, error) {
	if len(b.vehicles) >= MaxBatchVehicles {
		return nil, fmt.Errorf("add vehicle: batch is at capacity (%d)", MaxBatchVehicles)
	}

	v := &PlannedVehicle{
		ID:         uuid.NewString(),
		Label:      fmt.Sprintf("Bus %d", len(b.vehicles)+1),
		PeakPeriod: PeakMorning,
		Color:      Palette[len(b.vehicles)%len(Palette)],
	}
	b.vehicles = append(b.vehicles, v)
	return v, nil
}

// Remove deletes a vehicle by identifier. The last remaining vehicle
// cannot be removed.
func (b *Batch) Remove(id string) error {
	if len(b.vehicles) <= 1 {
		return errors.New("remove vehicle: batch must keep at least one vehicle")
	}

	for i, v := range b.vehicles {
		if v.ID == id {
			b.vehicles = append(b.vehicles[:i], b.vehicles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove vehicle: no vehicle with id %q", id)
}

// Find returns the vehicle with the given identifier, or nil.
func (b *Batch) Find(id string) *PlannedVehicle {
	for _, v := range b.vehicles {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// Vehicles returns the batch entries in insertion order.
// The slice is a copy; the pointed-to vehicles are shared.
func (b *Batch) Vehicles() []*PlannedVehicle {
	out := make([]*PlannedVehicle, len(b.vehicles))
	copy(out, b.vehicles)
	return out
}

func (b *Batch) Len() int { return len(b.vehicles) }

// Snapshot returns value copies of all vehicles, for use across
// suspension points without holding the session lock.
func (b *Batch) Snapshot() []PlannedVehicle {
	out := make([]PlannedVehicle, 0, len(b.vehicles))
	for _, v := range b.vehicles {
		out = append(out, *v)
	}
	return out
}

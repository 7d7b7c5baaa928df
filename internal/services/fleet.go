package services

import (
	"errors"
	"fmt"
	"math"
)

// Capacity-planning constants. These mirror the operating assumptions of
// the deployed fleet and are echoed in every recommendation so renderers
// and persistence payloads are self-describing.
const (
	VehicleCapacity        = 70
	OperatingWindowMinutes = 16 * 60
	LayoverMinutes         = 10
)

// Departures start when the operating day opens.
const serviceStartMinutes = 6 * 60

// FleetRecommendation is the derived capacity plan for one route's
// forecast demand. It is recomputed on demand and never stored on its
// own; commit folds it into the save payload.
type FleetRecommendation struct {
	DailyPassengers    int
	RoundTripMinutes   float64
	TripsNeeded        int
	TripsPerVehicle    int
	VehiclesNeeded     int
	FrequencyMinutes   int
	TotalTripsPerDay   int
	TotalDailyCapacity int
	UtilizationPercent float64

	VehicleCapacity        int
	OperatingWindowMinutes int
	LayoverMinutes         int
}

// RecommendFleet derives vehicles needed and departure cadence from
// forecast daily demand and the selected alternative's one-way duration.
//
// The derivation order is fixed; each step's rounding feeds the next:
//
//	roundTrip  = oneWay*2 + layover
//	trips      = ceil(demand / capacity)
//	tripsPerVy = floor(window / roundTrip)
//	vehicles   = ceil(trips / tripsPerVy)
//	frequency  = floor(roundTrip / vehicles)
//
// A zero or absent demand suppresses the whole computation (nil, nil)
// rather than producing a zero-vehicle answer.
func RecommendFleet(dailyPassengers int, oneWayDurationMin float64) (*FleetRecommendation, error) {
	if dailyPassengers <= 0 {
		return nil, nil
	}
	if oneWayDurationMin <= 0 {
		return nil, fmt.Errorf("recommend fleet: one-way duration must be positive, got %v", oneWayDurationMin)
	}

	roundTrip := oneWayDurationMin*2 + LayoverMinutes

	tripsNeeded := int(math.Ceil(float64(dailyPassengers) / VehicleCapacity))

	tripsPerVehicle := int(math.Floor(OperatingWindowMinutes / roundTrip))
	if tripsPerVehicle < 1 {
		return nil, fmt.Errorf(
			"recommend fleet: round trip of %v min exceeds the %d min operating window",
			roundTrip, OperatingWindowMinutes,
		)
	}

	vehiclesNeeded := int(math.Ceil(float64(tripsNeeded) / float64(tripsPerVehicle)))
	frequency := int(math.Floor(roundTrip / float64(vehiclesNeeded)))

	totalTrips := tripsPerVehicle * vehiclesNeeded
	totalCapacity := totalTrips * VehicleCapacity

	utilization := math.Round(float64(dailyPassengers)/float64(totalCapacity)*1000) / 10

	return &FleetRecommendation{
		DailyPassengers:    dailyPassengers,
		RoundTripMinutes:   roundTrip,
		TripsNeeded:        tripsNeeded,
		TripsPerVehicle:    tripsPerVehicle,
		VehiclesNeeded:     vehiclesNeeded,
		FrequencyMinutes:   frequency,
		TotalTripsPerDay:   totalTrips,
		TotalDailyCapacity: totalCapacity,
		UtilizationPercent: utilization,

		VehicleCapacity:        VehicleCapacity,
		OperatingWindowMinutes: OperatingWindowMinutes,
		LayoverMinutes:         LayoverMinutes,
	}, nil
}

// DepartureSchedule is the generated daily cadence for a committed route.
type DepartureSchedule struct {
	FirstDeparture string
	LastDeparture  string
	TotalTrips     int
	DepartureTimes []string
}

// BuildSchedule expands a recommendation into concrete departure times,
// one every FrequencyMinutes from the start of the operating day. The
// trip count comes from the recommendation, so the last departure always
// falls inside the operating window.
func BuildSchedule(rec *FleetRecommendation) (*DepartureSchedule, error) {
	if rec == nil {
		return nil, errors.New("build schedule: recommendation is nil")
	}
	if rec.TotalTripsPerDay < 1 || rec.FrequencyMinutes < 1 {
		return nil, fmt.Errorf(
			"build schedule: invalid cadence trips=%d frequency=%d",
			rec.TotalTripsPerDay, rec.FrequencyMinutes,
		)
	}

	times := make([]string, 0, rec.TotalTripsPerDay)
	for i := 0; i < rec.TotalTripsPerDay; i++ {
		m := serviceStartMinutes + i*rec.FrequencyMinutes
		times = append(times, fmt.Sprintf("%02d:%02d", (m/60)%24, m%60))
	}

	return &DepartureSchedule{
		FirstDeparture: times[0],
		LastDeparture:  times[len(times)-1],
		TotalTrips:     len(times),
		DepartureTimes: times,
	}, nil
}

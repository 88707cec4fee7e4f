package wizard

import (
	"fmt"
	"time"
)

// DefaultRouteDuration is used to derive the arrival instant when the
// client never picked a concrete route and so no duration is known.
const DefaultRouteDuration = time.Hour

// StopPayload mirrors one intermediate stop in the ride-creation request.
type StopPayload struct {
	Seq      int       `json:"seq"`
	Location string    `json:"location"`
	Coords   *GeoPoint `json:"coords,omitempty"`
}

// Payload is the body of the ride-creation request. Collection fields are
// always present, never null; the backend contract disallows
// missing-but-expected fields.
type Payload struct {
	DriverID         uint          `json:"driver_id"`
	VehicleID        int           `json:"vehicle_id"`
	DepartureCity    string        `json:"departure_city"`
	DepartureAddress string        `json:"departure_address"`
	DepartureCoords  *GeoPoint     `json:"departure_coords,omitempty"`
	ArrivalCity      string        `json:"arrival_city"`
	ArrivalAddress   string        `json:"arrival_address"`
	ArrivalCoords    *GeoPoint     `json:"arrival_coords,omitempty"`
	Stops            []StopPayload `json:"stops"`
	DepartureTime    time.Time     `json:"departure_time"`
	ArrivalTime      time.Time     `json:"arrival_time"`
	ReturnTime       *time.Time    `json:"return_time,omitempty"`
	PriceType        string        `json:"price_type"`
	PricePerSeat     float64       `json:"price_per_seat"`
	AvailableSeats   int           `json:"available_seats"`
	TotalSeats       int           `json:"total_seats"`
	Amenities        []string      `json:"amenities"`
	InstantBooking   bool          `json:"instant_booking"`
	WomenOnly        bool          `json:"women_only"`
	VerifiedOnly     bool          `json:"verified_only"`
	Featured         bool          `json:"featured"`
	MinRating        float64       `json:"min_rating"`
	Notes            string        `json:"notes"`
	IsRecurring      bool          `json:"is_recurring"`
	RecurringFreq    string        `json:"recurring_frequency,omitempty"`
	RecurringDays    []string      `json:"recurring_days"`
	RecurringEndDate string        `json:"recurring_end_date,omitempty"`
}

// combineDateTime merges the separate date and time strings the client
// entered into one instant.
func combineDateTime(date, clock string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// BuildPayload maps the accumulated wizard state, the selected vehicle and
// the driver identity into the ride-creation request body. It is pure: the
// state is read, never touched. The vehicle lookup should be unreachable
// after step-2 validation but is checked anyway since this is the last
// point before the network call.
func BuildPayload(s State, reg *Registry, driverID uint) (Payload, error) {
	if s.Vehicle.SelectedVehicleID == nil {
		return Payload{}, fmt.Errorf("no vehicle selected")
	}
	vehicle, ok := reg.Find(*s.Vehicle.SelectedVehicleID)
	if !ok {
		return Payload{}, fmt.Errorf("vehicle %d not found in registry", *s.Vehicle.SelectedVehicleID)
	}

	departure, err := combineDateTime(s.Route.DepartureDate, s.Route.DepartureTime)
	if err != nil {
		return Payload{}, err
	}

	duration := DefaultRouteDuration
	if s.Route.DurationMinutes > 0 {
		duration = time.Duration(s.Route.DurationMinutes) * time.Minute
	}

	var returnTime *time.Time
	if s.Route.RoundTrip && s.Route.ReturnDate != "" && s.Route.ReturnTime != "" {
		rt, err := combineDateTime(s.Route.ReturnDate, s.Route.ReturnTime)
		if err != nil {
			return Payload{}, err
		}
		returnTime = &rt
	}

	stops := make([]StopPayload, 0, len(s.Route.Stops))
	for i, stop := range s.Route.Stops {
		stops = append(stops, StopPayload{Seq: i + 1, Location: stop.Location, Coords: stop.Coords})
	}

	amenities := s.Preferences.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	// recurring_days is normalized to an empty list when recurrence is off
	// or no days were chosen.
	days := []string{}
	freq := ""
	endDate := ""
	if s.Publishing.Recurring {
		freq = string(s.Publishing.Frequency)
		endDate = s.Publishing.EndDate
		if len(s.Publishing.Days) > 0 {
			days = append(days, s.Publishing.Days...)
		}
	}

	return Payload{
		DriverID:         driverID,
		VehicleID:        vehicle.ID,
		DepartureCity:    s.Route.DepartureCity,
		DepartureAddress: s.Route.DepartureAddress,
		DepartureCoords:  s.Route.DepartureCoords,
		ArrivalCity:      s.Route.ArrivalCity,
		ArrivalAddress:   s.Route.ArrivalAddress,
		ArrivalCoords:    s.Route.ArrivalCoords,
		Stops:            stops,
		DepartureTime:    departure,
		ArrivalTime:      departure.Add(duration),
		ReturnTime:       returnTime,
		PriceType:        string(s.Vehicle.PriceType),
		PricePerSeat:     s.Vehicle.PricePerSeat,
		AvailableSeats:   s.Vehicle.AvailableSeats,
		TotalSeats:       vehicle.Capacity,
		Amenities:        amenities,
		InstantBooking:   s.Preferences.InstantBooking,
		WomenOnly:        s.Preferences.WomenOnly,
		VerifiedOnly:     s.Preferences.VerifiedOnly,
		Featured:         s.Publishing.Featured,
		MinRating:        s.Preferences.MinRating,
		Notes:            s.Preferences.Notes,
		IsRecurring:      s.Publishing.Recurring,
		RecurringFreq:    freq,
		RecurringDays:    days,
		RecurringEndDate: endDate,
	}, nil
}

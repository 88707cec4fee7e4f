package wizard

// Package wizard implements the driver's ride-publishing flow: a four step
// form whose accumulated state is validated step by step and finally
// transformed into the ride-creation payload.

// MaxStops bounds the number of intermediate stops on a route.
const MaxStops = 3

// GeoPoint is an optional coordinate pair attached to free-text locations.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Stop is an intermediate pickup/dropoff point between departure and arrival.
type Stop struct {
	ID       int       `json:"id"`
	Location string    `json:"location"`
	Coords   *GeoPoint `json:"coords,omitempty"`
}

// RouteDetails is the step-1 slice of the wizard state. Dates and times are
// kept as the raw strings the client entered ("2006-01-02" / "15:04") and
// only combined into instants by the payload transformer.
type RouteDetails struct {
	DepartureCity    string    `json:"departure_city"`
	DepartureAddress string    `json:"departure_address"`
	DepartureCoords  *GeoPoint `json:"departure_coords,omitempty"`
	ArrivalCity      string    `json:"arrival_city"`
	ArrivalAddress   string    `json:"arrival_address"`
	ArrivalCoords    *GeoPoint `json:"arrival_coords,omitempty"`
	DepartureDate    string    `json:"departure_date"`
	DepartureTime    string    `json:"departure_time"`
	RoundTrip        bool      `json:"round_trip"`
	ReturnDate       string    `json:"return_date"`
	ReturnTime       string    `json:"return_time"`
	Stops            []Stop    `json:"stops"`
	// DurationMinutes comes from the route-selection step when the client
	// picked a concrete route; 0 means none was chosen.
	DurationMinutes int `json:"duration_minutes"`
}

// PriceType enumerates how the per-seat price is interpreted.
type PriceType string

const (
	PriceTypeFixed       PriceType = "fixed"
	PriceTypePerDistance PriceType = "per_distance"
)

// VehicleAndPricing is the step-2 slice of the wizard state.
type VehicleAndPricing struct {
	SelectedVehicleID *int      `json:"selected_vehicle_id"`
	AvailableSeats    int       `json:"available_seats"`
	PricePerSeat      float64   `json:"price_per_seat"`
	PriceType         PriceType `json:"price_type"`
}

// Preferences is the step-3 slice of the wizard state. Nothing here is
// required; it is carried through to the payload unchanged.
type Preferences struct {
	Amenities      []string `json:"amenities"`
	InstantBooking bool     `json:"instant_booking"`
	WomenOnly      bool     `json:"women_only"`
	VerifiedOnly   bool     `json:"verified_only"`
	MinRating      float64  `json:"min_rating"`
	Notes          string   `json:"notes"`
}

// Frequency enumerates how often a recurring ride repeats.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Publishing is the step-4 slice of the wizard state.
type Publishing struct {
	Featured   bool      `json:"featured"`
	Recurring  bool      `json:"recurring"`
	Frequency  Frequency `json:"frequency"`
	Days       []string  `json:"days"`
	EndDate    string    `json:"end_date"`
	AgreeTerms bool      `json:"agree_terms"`
}

// State is the single aggregate threaded through all four steps. Step
// components replace whole sections at a time; nothing mutates a section
// in place.
type State struct {
	Route       RouteDetails      `json:"route"`
	Vehicle     VehicleAndPricing `json:"vehicle"`
	Preferences Preferences       `json:"preferences"`
	Publishing  Publishing        `json:"publishing"`
}

package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

// validState returns a state that passes every step with vehicle 1
// selected.
func validState() State {
	return State{
		Route: RouteDetails{
			DepartureCity: "Tunis",
			ArrivalCity:   "Sousse",
			DepartureDate: "2025-06-01",
			DepartureTime: "09:00",
		},
		Vehicle: VehicleAndPricing{
			SelectedVehicleID: intPtr(1),
			AvailableSeats:    3,
			PricePerSeat:      25,
			PriceType:         PriceTypeFixed,
		},
		Publishing: Publishing{AgreeTerms: true},
	}
}

func TestValidateStep1NamesEveryEmptyField(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*State)
		message string
	}{
		{"departure city", func(s *State) { s.Route.DepartureCity = "" }, "Departure city is required"},
		{"arrival city", func(s *State) { s.Route.ArrivalCity = "" }, "Arrival city is required"},
		{"departure date", func(s *State) { s.Route.DepartureDate = "" }, "Departure date is required"},
		{"departure time", func(s *State) { s.Route.DepartureTime = "  " }, "Departure time is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validState()
			tt.mutate(&s)
			res := ValidateStep1(s)
			assert.False(t, res.Valid)
			assert.Contains(t, res.Errors, tt.message)
		})
	}
}

func TestValidateStep1AllEmptyReportsAllFields(t *testing.T) {
	res := ValidateStep1(State{})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		"Departure city is required",
		"Arrival city is required",
		"Departure date is required",
		"Departure time is required",
	}, res.Errors)
}

func TestValidateStep1Passes(t *testing.T) {
	res := ValidateStep1(validState())
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateStep2RequiresVehicle(t *testing.T) {
	s := validState()
	s.Vehicle.SelectedVehicleID = nil
	res := ValidateStep2(s)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Please select a vehicle")
}

func TestValidateStep2RejectsZeroSeats(t *testing.T) {
	s := validState()
	s.Vehicle.AvailableSeats = 0
	res := ValidateStep2(s)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Available seats must be greater than 0")
}

func TestValidateStep2RejectsNonPositivePrice(t *testing.T) {
	s := validState()
	s.Vehicle.PricePerSeat = 0
	res := ValidateStep2(s)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Price per seat must be greater than 0")
}

func TestValidateStep2RequiresPriceType(t *testing.T) {
	s := validState()
	s.Vehicle.PriceType = ""
	res := ValidateStep2(s)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "Please choose a price type")

	s.Vehicle.PriceType = PriceTypePerDistance
	assert.True(t, ValidateStep2(s).Valid)
}

func TestValidateStep3AlwaysPasses(t *testing.T) {
	assert.True(t, ValidateStep3(State{}).Valid)
	assert.True(t, ValidateStep3(validState()).Valid)
}

func TestValidateStep4RequiresTerms(t *testing.T) {
	s := validState()
	s.Publishing.AgreeTerms = false
	res := ValidateStep4(s)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "You must agree to the terms and conditions")
}

func TestValidateStepUnknownStepFails(t *testing.T) {
	assert.False(t, ValidateStep(0, validState()).Valid)
	assert.False(t, ValidateStep(5, validState()).Valid)
}

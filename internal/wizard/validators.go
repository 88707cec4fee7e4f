package wizard

import "strings"

// StepResult is the outcome of running one step's validator: either valid,
// or an ordered list of human-readable messages naming every failing field.
type StepResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func result(errs []string) StepResult {
	return StepResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateStep1 checks the route step: departure city, arrival city,
// departure date and departure time must all be present.
func ValidateStep1(s State) StepResult {
	var errs []string
	if strings.TrimSpace(s.Route.DepartureCity) == "" {
		errs = append(errs, "Departure city is required")
	}
	if strings.TrimSpace(s.Route.ArrivalCity) == "" {
		errs = append(errs, "Arrival city is required")
	}
	if strings.TrimSpace(s.Route.DepartureDate) == "" {
		errs = append(errs, "Departure date is required")
	}
	if strings.TrimSpace(s.Route.DepartureTime) == "" {
		errs = append(errs, "Departure time is required")
	}
	return result(errs)
}

// ValidateStep2 checks the vehicle & pricing step.
func ValidateStep2(s State) StepResult {
	var errs []string
	if s.Vehicle.SelectedVehicleID == nil {
		errs = append(errs, "Please select a vehicle")
	}
	if s.Vehicle.AvailableSeats <= 0 {
		errs = append(errs, "Available seats must be greater than 0")
	}
	if s.Vehicle.PricePerSeat <= 0 {
		errs = append(errs, "Price per seat must be greater than 0")
	}
	if s.Vehicle.PriceType != PriceTypeFixed && s.Vehicle.PriceType != PriceTypePerDistance {
		errs = append(errs, "Please choose a price type")
	}
	return result(errs)
}

// ValidateStep3 checks the preferences step. Nothing there is required, so
// it always passes; it exists so every step is gated the same way.
func ValidateStep3(State) StepResult {
	return result(nil)
}

// ValidateStep4 checks the review & publish step.
func ValidateStep4(s State) StepResult {
	var errs []string
	if !s.Publishing.AgreeTerms {
		errs = append(errs, "You must agree to the terms and conditions")
	}
	return result(errs)
}

var stepValidators = map[int]func(State) StepResult{
	StepRoute:       ValidateStep1,
	StepVehicle:     ValidateStep2,
	StepPreferences: ValidateStep3,
	StepReview:      ValidateStep4,
}

// ValidateStep dispatches to the validator registered for step n. Unknown
// steps fail rather than pass silently.
func ValidateStep(n int, s State) StepResult {
	v, ok := stepValidators[n]
	if !ok {
		return result([]string{"Unknown step"})
	}
	return v(s)
}

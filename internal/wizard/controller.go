package wizard

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Step indices. The wizard always starts at StepRoute and never skips.
const (
	StepRoute       = 1
	StepVehicle     = 2
	StepPreferences = 3
	StepReview      = 4

	stepCount = 4
)

// ErrSubmitInProgress is returned when Submit is called while an earlier
// submission is still outstanding.
var ErrSubmitInProgress = errors.New("a submission is already in progress")

// ErrAlreadySubmitted is returned when Submit is called after the ride was
// published.
var ErrAlreadySubmitted = errors.New("ride has already been published")

// ValidationError reports which step failed and every failing field's
// message, in order.
type ValidationError struct {
	Step     int
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d invalid: %s", e.Step, strings.Join(e.Messages, "; "))
}

// PreconditionError reports a submission precondition that failed before
// any network call was attempted.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// RideCreator issues the single ride-creation call at the end of the
// wizard. Implementations own persistence; the controller only cares
// whether the call succeeded.
type RideCreator interface {
	CreateRide(p Payload) (uint, error)
}

// Controller owns the current-step pointer and the wizard state, gates
// forward navigation on validation, and triggers the final submission.
// All methods are safe for concurrent use; a submitting flag rejects
// re-entrant submits instead of queueing them.
type Controller struct {
	mu sync.Mutex

	driverID   uint
	state      State
	registry   *Registry
	creator    RideCreator
	step       int
	completed  [stepCount + 1]bool
	submitting bool
	submitted  bool
	rideID     uint
}

// NewController starts a fresh wizard at step 1 with an all-zero state.
func NewController(driverID uint, registry *Registry, creator RideCreator) *Controller {
	return &Controller{
		driverID: driverID,
		registry: registry,
		creator:  creator,
		step:     StepRoute,
	}
}

// Step returns the current step index (1-4).
func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// State returns a snapshot of the accumulated wizard state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Completed lists the steps whose validators have passed, in order.
func (c *Controller) Completed() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []int
	for i := 1; i <= stepCount; i++ {
		if c.completed[i] {
			out = append(out, i)
		}
	}
	return out
}

// Submitted reports whether the ride was published, and its id if so.
func (c *Controller) Submitted() (uint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rideID, c.submitted
}

// Registry exposes the session's vehicle registry.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// SetRoute replaces the route section wholesale.
func (c *Controller) SetRoute(rd RouteDetails) error {
	if len(rd.Stops) > MaxStops {
		return fmt.Errorf("at most %d stops are allowed", MaxStops)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Route = rd
	return nil
}

// SetVehicleAndPricing replaces the vehicle & pricing section wholesale.
func (c *Controller) SetVehicleAndPricing(vp VehicleAndPricing) error {
	if vp.SelectedVehicleID != nil {
		if _, ok := c.registry.Find(*vp.SelectedVehicleID); !ok {
			return fmt.Errorf("vehicle %d not found in registry", *vp.SelectedVehicleID)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Vehicle = vp
	return nil
}

// SetPreferences replaces the preferences section wholesale.
func (c *Controller) SetPreferences(p Preferences) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Preferences = p
}

// SetPublishing replaces the publishing section wholesale.
func (c *Controller) SetPublishing(p Publishing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Publishing = p
}

// capacityErrors enforces the seats-vs-capacity invariant, which needs the
// registry and therefore cannot live in the state-only step validators.
func (c *Controller) capacityErrors(s State) []string {
	if s.Vehicle.SelectedVehicleID == nil {
		return nil
	}
	v, ok := c.registry.Find(*s.Vehicle.SelectedVehicleID)
	if !ok {
		return nil
	}
	if s.Vehicle.AvailableSeats > v.Capacity {
		return []string{fmt.Sprintf("Available seats cannot exceed the vehicle's capacity of %d", v.Capacity)}
	}
	return nil
}

func (c *Controller) validateLocked(step int) *ValidationError {
	res := ValidateStep(step, c.state)
	msgs := res.Errors
	if step == StepVehicle {
		msgs = append(msgs, c.capacityErrors(c.state)...)
	}
	if len(msgs) > 0 {
		return &ValidationError{Step: step, Messages: msgs}
	}
	return nil
}

// GoNext validates the current step and, on success, marks it completed
// and advances. On failure nothing moves and every failing field is
// reported.
func (c *Controller) GoNext() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.validateLocked(c.step); err != nil {
		return err
	}
	c.completed[c.step] = true
	if c.step < stepCount {
		c.step++
	}
	return nil
}

// GoBack moves one step back. It never validates and is a no-op on the
// first step.
func (c *Controller) GoBack() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step > StepRoute {
		c.step--
	}
}

// Submit re-validates every step in order, checks the submission
// preconditions, builds the payload and issues exactly one create call.
// On failure the wizard state is left untouched so the user can fix the
// problem or retry; there is no automatic retry.
func (c *Controller) Submit() (uint, error) {
	c.mu.Lock()
	if c.submitted {
		c.mu.Unlock()
		return 0, ErrAlreadySubmitted
	}
	if c.submitting {
		c.mu.Unlock()
		return 0, ErrSubmitInProgress
	}
	for step := StepRoute; step <= StepReview; step++ {
		if err := c.validateLocked(step); err != nil {
			c.mu.Unlock()
			return 0, err
		}
	}
	if c.driverID == 0 {
		c.mu.Unlock()
		return 0, &PreconditionError{Reason: "no authenticated driver identity"}
	}
	payload, err := BuildPayload(c.state, c.registry, c.driverID)
	if err != nil {
		c.mu.Unlock()
		return 0, &PreconditionError{Reason: err.Error()}
	}
	c.submitting = true
	c.mu.Unlock()

	rideID, err := c.creator.CreateRide(payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		return 0, fmt.Errorf("could not publish ride: %w", err)
	}
	c.submitted = true
	c.rideID = rideID
	return rideID, nil
}

package wizard

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCreator records create calls and can be told to fail or block.
type stubCreator struct {
	mu      sync.Mutex
	calls   int
	last    Payload
	fail    error
	rideID  uint
	entered chan struct{}
	release chan struct{}
}

func (s *stubCreator) CreateRide(p Payload) (uint, error) {
	s.mu.Lock()
	s.calls++
	s.last = p
	fail := s.fail
	id := s.rideID
	s.mu.Unlock()
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	if fail != nil {
		return 0, fail
	}
	return id, nil
}

func (s *stubCreator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestController(creator RideCreator) *Controller {
	return NewController(7, NewRegistry(seedVehicles()), creator)
}

func fillValid(c *Controller) {
	s := validState()
	_ = c.SetRoute(s.Route)
	_ = c.SetVehicleAndPricing(s.Vehicle)
	c.SetPreferences(s.Preferences)
	c.SetPublishing(s.Publishing)
}

func TestControllerStartsAtStepOne(t *testing.T) {
	c := newTestController(&stubCreator{rideID: 1})
	assert.Equal(t, StepRoute, c.Step())
	assert.Empty(t, c.Completed())
}

func TestGoNextBlockedByInvalidStep(t *testing.T) {
	c := newTestController(&stubCreator{rideID: 1})

	err := c.GoNext()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepRoute, verr.Step)
	assert.Len(t, verr.Messages, 4)
	assert.Equal(t, StepRoute, c.Step(), "no partial advancement")
}

func TestGoNextAdvancesAndMarksCompleted(t *testing.T) {
	c := newTestController(&stubCreator{rideID: 1})
	fillValid(c)

	require.NoError(t, c.GoNext())
	assert.Equal(t, StepVehicle, c.Step())
	assert.Equal(t, []int{StepRoute}, c.Completed())

	require.NoError(t, c.GoNext())
	require.NoError(t, c.GoNext())
	require.NoError(t, c.GoNext())
	assert.Equal(t, StepReview, c.Step(), "step never exceeds the last step")
	assert.Equal(t, []int{StepRoute, StepVehicle, StepPreferences, StepReview}, c.Completed())
}

func TestGoBackNeverValidates(t *testing.T) {
	c := newTestController(&stubCreator{rideID: 1})
	fillValid(c)
	require.NoError(t, c.GoNext())

	// Invalidate the state, then go back freely.
	_ = c.SetRoute(RouteDetails{})
	c.GoBack()
	assert.Equal(t, StepRoute, c.Step())

	c.GoBack()
	assert.Equal(t, StepRoute, c.Step(), "no-op on the first step")
}

func TestGoBackThenGoNextIsIdempotent(t *testing.T) {
	c := newTestController(&stubCreator{rideID: 1})
	fillValid(c)
	require.NoError(t, c.GoNext())

	before := c.State()
	c.GoBack()
	require.NoError(t, c.GoNext())

	assert.Equal(t, StepVehicle, c.Step())
	assert.Equal(t, before, c.State())
}

func TestGoNextEnforcesCapacityBound(t *testing.T) {
	c := newTestController(&stubCreator{rideID: 1})
	fillValid(c)
	s := validState()
	s.Vehicle.AvailableSeats = 5 // vehicle 1 seats 4
	require.NoError(t, c.SetVehicleAndPricing(s.Vehicle))
	require.NoError(t, c.GoNext())

	err := c.GoNext()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepVehicle, verr.Step)
	assert.Contains(t, verr.Messages[0], "capacity")
}

func TestSetRouteRejectsTooManyStops(t *testing.T) {
	c := newTestController(&stubCreator{rideID: 1})
	rd := validState().Route
	rd.Stops = []Stop{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	require.Error(t, c.SetRoute(rd))
}

func TestSetVehicleRejectsUnknownVehicle(t *testing.T) {
	c := newTestController(&stubCreator{rideID: 1})
	vp := validState().Vehicle
	vp.SelectedVehicleID = intPtr(42)
	require.Error(t, c.SetVehicleAndPricing(vp))
}

func TestSubmitNeverCallsNetworkOnValidationFailure(t *testing.T) {
	creator := &stubCreator{rideID: 1}
	c := newTestController(creator)
	fillValid(c)

	// Break step 1.
	rd := validState().Route
	rd.DepartureCity = ""
	require.NoError(t, c.SetRoute(rd))

	_, err := c.Submit()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepRoute, verr.Step)
	assert.Zero(t, creator.callCount())
}

func TestSubmitNeverCallsNetworkWithoutTerms(t *testing.T) {
	creator := &stubCreator{rideID: 1}
	c := newTestController(creator)
	fillValid(c)
	c.SetPublishing(Publishing{AgreeTerms: false})

	_, err := c.Submit()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepReview, verr.Step)
	assert.Zero(t, creator.callCount())
}

func TestSubmitRequiresDriverIdentity(t *testing.T) {
	creator := &stubCreator{rideID: 1}
	c := NewController(0, NewRegistry(seedVehicles()), creator)
	fillValid(c)

	_, err := c.Submit()
	var perr *PreconditionError
	require.ErrorAs(t, err, &perr)
	assert.Zero(t, creator.callCount())
}

func TestSubmitSuccess(t *testing.T) {
	creator := &stubCreator{rideID: 33}
	c := newTestController(creator)
	fillValid(c)

	rideID, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, uint(33), rideID)
	assert.Equal(t, 1, creator.callCount())
	assert.Equal(t, uint(7), creator.last.DriverID)

	got, submitted := c.Submitted()
	assert.True(t, submitted)
	assert.Equal(t, uint(33), got)
}

func TestSubmitFailureKeepsStateForRetry(t *testing.T) {
	creator := &stubCreator{fail: errors.New("backend unavailable")}
	c := newTestController(creator)
	fillValid(c)
	before := c.State()

	_, err := c.Submit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unavailable")
	assert.Equal(t, before, c.State(), "state survives a failed submit")

	// Manual retry succeeds once the backend recovers.
	creator.mu.Lock()
	creator.fail = nil
	creator.rideID = 5
	creator.mu.Unlock()

	rideID, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, uint(5), rideID)
	assert.Equal(t, 2, creator.callCount())
}

func TestSubmitRejectsSecondAttemptWhileInFlight(t *testing.T) {
	creator := &stubCreator{
		rideID:  1,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := newTestController(creator)
	fillValid(c)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit()
		done <- err
	}()

	<-creator.entered // first submit is now in flight
	_, err := c.Submit()
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(creator.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, creator.callCount())
}

func TestConcurrentVehicleAddsAndNavigation(t *testing.T) {
	creator := &stubCreator{rideID: 9}
	c := newTestController(creator)
	fillValid(c)
	require.NoError(t, c.GoNext()) // sit at the vehicle step

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				c.Registry().Add(Vehicle{Make: "Seat", Model: "Ibiza", Capacity: 4})
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_ = c.GoNext() // runs the capacity check against the registry
				c.GoBack()
				_ = c.Registry().Vehicles()
			}
		}()
	}
	wg.Wait()

	// 2 seeded + 200 added, every id assigned exactly once.
	vehicles := c.Registry().Vehicles()
	require.Len(t, vehicles, 202)
	seen := make(map[int]bool, len(vehicles))
	for _, v := range vehicles {
		assert.False(t, seen[v.ID], "duplicate vehicle id %d", v.ID)
		seen[v.ID] = true
	}

	_, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, 1, creator.callCount())
}

func TestSubmitAfterSuccessIsRejected(t *testing.T) {
	creator := &stubCreator{rideID: 1}
	c := newTestController(creator)
	fillValid(c)

	_, err := c.Submit()
	require.NoError(t, err)

	_, err = c.Submit()
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, 1, creator.callCount())
}

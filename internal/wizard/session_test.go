package wizard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVehicleSource struct {
	vehicles []Vehicle
	err      error
}

func (s *stubVehicleSource) DriverVehicles(uint) ([]Vehicle, error) {
	return s.vehicles, s.err
}

func newTestManager(seed []Vehicle) *Manager {
	return NewManager(&stubCreator{rideID: 1}, &stubVehicleSource{vehicles: seed})
}

func TestManagerStartSeedsRegistry(t *testing.T) {
	m := newTestManager(seedVehicles())

	s, err := m.Start(7)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, uint(7), s.DriverID)
	assert.Len(t, s.Controller.Registry().Vehicles(), 2)
	assert.Equal(t, StepRoute, s.Controller.Step())
}

func TestManagerStartPropagatesSeedError(t *testing.T) {
	m := NewManager(&stubCreator{}, &stubVehicleSource{err: errors.New("db down")})
	_, err := m.Start(7)
	require.Error(t, err)
}

func TestManagerGetEnforcesOwnership(t *testing.T) {
	m := newTestManager(nil)
	s, err := m.Start(7)
	require.NoError(t, err)

	got, err := m.Get(s.ID, 7)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = m.Get(s.ID, 8)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = m.Get("nope", 7)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerRemove(t *testing.T) {
	m := newTestManager(nil)
	s, err := m.Start(7)
	require.NoError(t, err)

	m.Remove(s.ID)
	_, err = m.Get(s.ID, 7)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerSweepRemovesIdleSessions(t *testing.T) {
	m := newTestManager(nil)
	stale, err := m.Start(7)
	require.NoError(t, err)

	removed := m.Sweep(time.Now().Add(25 * time.Hour))
	assert.Equal(t, 1, removed)

	_, err = m.Get(stale.ID, 7)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerSweepKeepsActiveSessions(t *testing.T) {
	m := newTestManager(nil)
	s, err := m.Start(7)
	require.NoError(t, err)

	removed := m.Sweep(time.Now())
	assert.Zero(t, removed)

	_, err = m.Get(s.ID, 7)
	require.NoError(t, err)
}

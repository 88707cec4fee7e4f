package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrSessionNotFound is returned for unknown or expired session ids, and
// for sessions owned by a different driver.
var ErrSessionNotFound = errors.New("wizard session not found")

// VehicleSource seeds a new session's registry, typically from the
// driver's persisted vehicles.
type VehicleSource interface {
	DriverVehicles(driverID uint) ([]Vehicle, error)
}

// Session is one driver's in-flight wizard: what a browser tab holds in
// the client, keyed by an opaque id on the server.
type Session struct {
	ID         string
	DriverID   uint
	Controller *Controller

	mu         sync.Mutex
	lastActive time.Time
}

// Touch records activity so the sweeper leaves the session alone.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive.Before(cutoff)
}

// Manager owns all live wizard sessions. Sessions disappear when the ride
// is published, when the driver abandons the wizard, or after sitting idle
// past the TTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	creator  RideCreator
	vehicles VehicleSource
	ttl      time.Duration
}

// NewManager creates a session manager and starts its idle sweeper.
func NewManager(creator RideCreator, vehicles VehicleSource) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		creator:  creator,
		vehicles: vehicles,
		ttl:      24 * time.Hour,
	}
	go m.sweepLoop()
	return m
}

// Start opens a fresh wizard for the driver, seeding the vehicle registry
// from the driver's garage.
func (m *Manager) Start(driverID uint) (*Session, error) {
	seed, err := m.vehicles.DriverVehicles(driverID)
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:         uuid.NewString(),
		DriverID:   driverID,
		Controller: NewController(driverID, NewRegistry(seed), m.creator),
		lastActive: time.Now(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	logrus.WithFields(logrus.Fields{"session_id": s.ID, "driver_id": driverID}).Info("Wizard session started")
	return s, nil
}

// Get fetches a session, enforcing that it belongs to the calling driver.
func (m *Manager) Get(id string, driverID uint) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok || s.DriverID != driverID {
		return nil, ErrSessionNotFound
	}
	s.Touch()
	return s, nil
}

// Remove drops a session, after a successful submit or an explicit
// abandon.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Sweep removes sessions idle past the TTL and returns how many went.
func (m *Manager) Sweep(now time.Time) int {
	cutoff := now.Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.idleSince(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *Manager) sweepLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for now := range ticker.C {
		if n := m.Sweep(now); n > 0 {
			logrus.WithField("count", n).Info("Swept idle wizard sessions")
		}
	}
}

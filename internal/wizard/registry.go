package wizard

import "sync"

// Vehicle is a car the driver can publish a ride with. Inside the wizard it
// lives in the session registry only; persisted vehicles are mapped into
// this shape when a session starts.
type Vehicle struct {
	ID       int    `json:"id"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Plate    string `json:"plate"`
	Color    string `json:"color"`
	Capacity int    `json:"capacity"`
	Type     string `json:"type"` // sedan, suv, van, hatchback
	PhotoURL string `json:"photo_url"`
	Verified bool   `json:"verified"`
}

// Registry holds the vehicles available to the driver for this wizard
// session. Vehicles added through the sub-form exist only for the session's
// lifetime and are never written back. The registry is shared between the
// controller and the vehicle sub-form, so it carries its own lock.
type Registry struct {
	mu       sync.Mutex
	vehicles []Vehicle
}

// NewRegistry seeds a registry, usually from the driver's persisted
// vehicles.
func NewRegistry(seed []Vehicle) *Registry {
	r := &Registry{vehicles: make([]Vehicle, len(seed))}
	copy(r.vehicles, seed)
	return r
}

// Vehicles returns a copy of the registry's contents in insertion order.
func (r *Registry) Vehicles() []Vehicle {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Vehicle, len(r.vehicles))
	copy(out, r.vehicles)
	return out
}

// Find looks a vehicle up by id.
func (r *Registry) Find(id int) (Vehicle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

// Add appends a new vehicle, assigning it one more than the highest
// existing id (1 when the registry is empty). New vehicles always start
// unverified, pending review.
func (r *Registry) Add(v Vehicle) Vehicle {
	r.mu.Lock()
	defer r.mu.Unlock()
	maxID := 0
	for _, existing := range r.vehicles {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	v.ID = maxID + 1
	v.Verified = false
	r.vehicles = append(r.vehicles, v)
	return v
}

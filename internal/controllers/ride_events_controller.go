package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"wasselni/internal/middleware"
	"wasselni/internal/wizard"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// RideEvent is pushed to passengers watching a departure city when a
// driver publishes a new ride there.
type RideEvent struct {
	RideID         uint    `json:"ride_id"`
	DepartureCity  string  `json:"departure_city"`
	ArrivalCity    string  `json:"arrival_city"`
	DepartureDate  string  `json:"departure_date"`
	DepartureTime  string  `json:"departure_time"`
	PricePerSeat   float64 `json:"price_per_seat"`
	AvailableSeats int     `json:"available_seats"`
}

// RideHub manages active WebSocket connections of passengers watching for
// new rides, grouped by departure city, and broadcasts publish events.
type RideHub struct {
	cityClients map[string]map[*websocket.Conn]bool
	broadcast   chan RideEvent
	mu          sync.Mutex
}

// NewRideHub creates a hub and starts its broadcasting goroutine.
func NewRideHub() *RideHub {
	hub := &RideHub{
		cityClients: make(map[string]map[*websocket.Conn]bool),
		broadcast:   make(chan RideEvent, 100),
	}
	go hub.run()
	return hub
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// run listens on the broadcast channel and fans events out to the clients
// watching the event's departure city.
func (h *RideHub) run() {
	for event := range h.broadcast {
		h.mu.Lock()
		clients := h.cityClients[cityKey(event.DepartureCity)]
		for conn := range clients {
			go func(c *websocket.Conn, ev RideEvent) {
				if err := c.WriteJSON(ev); err != nil {
					if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
						h.UnregisterClient(ev.DepartureCity, c)
					} else {
						logrus.WithError(err).WithFields(logrus.Fields{
							"city":     ev.DepartureCity,
							"conn_ptr": fmt.Sprintf("%p", c),
						}).Warn("Failed to send ride event to client.")
					}
				}
			}(conn, event)
		}
		h.mu.Unlock()
	}
}

// RegisterClient adds a watcher for a departure city.
func (h *RideHub) RegisterClient(city string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := cityKey(city)
	if _, ok := h.cityClients[key]; !ok {
		h.cityClients[key] = make(map[*websocket.Conn]bool)
	}
	h.cityClients[key][conn] = true
	logrus.WithFields(logrus.Fields{
		"city":     key,
		"conn_ptr": fmt.Sprintf("%p", conn),
	}).Info("Client registered with RideHub.")
}

// UnregisterClient removes a disconnected watcher.
func (h *RideHub) UnregisterClient(city string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := cityKey(city)
	if clients, ok := h.cityClients[key]; ok {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(h.cityClients, key)
		}
	}
}

// Publish queues a ride event for broadcast, dropping it if the channel is
// full rather than blocking the publisher.
func (h *RideHub) Publish(event RideEvent) {
	select {
	case h.broadcast <- event:
	default:
		logrus.Warn("Ride event broadcast channel full, dropping event.")
	}
}

var rideHub = NewRideHub()

// announceRide pushes a publish event built from the submitted wizard
// state to everyone watching the departure city.
func announceRide(rideID uint, state wizard.State) {
	rideHub.Publish(RideEvent{
		RideID:         rideID,
		DepartureCity:  state.Route.DepartureCity,
		ArrivalCity:    state.Route.ArrivalCity,
		DepartureDate:  state.Route.DepartureDate,
		DepartureTime:  state.Route.DepartureTime,
		PricePerSeat:   state.Vehicle.PricePerSeat,
		AvailableSeats: state.Vehicle.AvailableSeats,
	})
}

// HandleRideEventsWebSocket upgrades the connection and streams ride
// publish events for one departure city. Auth arrives as a token query
// parameter since browsers cannot set headers on websocket requests.
func HandleRideEventsWebSocket(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication token"})
		return
	}
	if _, _, err := middleware.ParseClaims(tokenString); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	city := c.Query("city")
	if strings.TrimSpace(city) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'city' query parameter"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade ride events connection.")
		return
	}

	rideHub.RegisterClient(city, conn)
	defer func() {
		rideHub.UnregisterClient(city, conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("city", city).Info("Ride events WebSocket closed.")
			} else {
				logrus.WithError(err).Warn("Error reading from ride events WebSocket.")
			}
			return
		}
	}
}

package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Ride statuses.
const (
	RideStatusPublished = "published"
	RideStatusCancelled = "cancelled"
	RideStatusCompleted = "completed"
)

// Ride is a published offer: a driver, a vehicle, a route and the
// pricing/preference terms passengers search against.
type Ride struct {
	gorm.Model
	DriverID  uint    `json:"driver_id" gorm:"index"`
	Driver    Driver  `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	VehicleID uint    `json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	RouteID   uint    `json:"route_id"`
	Route     Route   `gorm:"foreignKey:RouteID" json:"route,omitempty"`

	DepartureCity    string     `json:"departure_city" gorm:"index"`
	DepartureAddress string     `json:"departure_address"`
	ArrivalCity      string     `json:"arrival_city" gorm:"index"`
	ArrivalAddress   string     `json:"arrival_address"`
	DepartureTime    time.Time  `json:"departure_time" gorm:"index"`
	ArrivalTime      time.Time  `json:"arrival_time"`
	ReturnTime       *time.Time `json:"return_time,omitempty"`

	PriceType      string  `json:"price_type"` // "fixed", "per_distance"
	PricePerSeat   float64 `json:"price_per_seat"`
	AvailableSeats int     `json:"available_seats"`
	TotalSeats     int     `json:"total_seats"`

	Amenities      pq.StringArray `json:"amenities" gorm:"type:text[]"`
	InstantBooking bool           `json:"instant_booking"`
	WomenOnly      bool           `json:"women_only"`
	VerifiedOnly   bool           `json:"verified_only"`
	MinRating      float64        `json:"min_rating"`
	Notes          string         `json:"notes"`

	Featured           bool           `json:"featured"`
	IsRecurring        bool           `json:"is_recurring"`
	RecurringFrequency string         `json:"recurring_frequency"` // "daily", "weekly", "monthly"
	RecurringDays      pq.StringArray `json:"recurring_days" gorm:"type:text[]"`
	RecurringEndDate   string         `json:"recurring_end_date"`

	Status string `json:"status" gorm:"default:published;index"`
}

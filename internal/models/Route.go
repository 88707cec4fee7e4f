package models

import (
	"gorm.io/gorm"
)

// Route represents the path of a published ride.
// Each route belongs to one ride and carries the ordered stops between
// departure and arrival.
type Route struct {
	gorm.Model

	Name     string `json:"name"`
	DriverID uint   `json:"driver_id"`

	// Geometry stored in PostGIS as a LINESTRING (SRID 4326), built from
	// the wizard's departure/stop/arrival coordinates when they are known.
	// When creating, provide GeoJSON; stored as WKB.
	Geometry []byte `gorm:"type:bytea" json:"-"`

	Stops []RideStop `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"stops,omitempty"`
}

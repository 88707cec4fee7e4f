package models

import (
	"gorm.io/gorm"
)

// RideStop represents an intermediate stop along a ride's route.
// Seq indicates order; coordinates are optional since stops may be
// free-text only.
type RideStop struct {
	gorm.Model

	Location string  `json:"location" binding:"required"`
	Seq      int     `json:"seq"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`

	// Foreign key to route
	RouteID uint `json:"route_id"`
}

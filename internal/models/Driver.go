// internal/models/driver.go
package models

import (
	"gorm.io/gorm"
)

type Driver struct {
	gorm.Model
	UserID        uint    `json:"user_id" gorm:"unique"` // Foreign key to User
	User          User    `gorm:"foreignKey:UserID" json:"-"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	LicenseNumber string  `json:"license_number"`
	Rating        float64 `json:"rating"`
	Verified      bool    `json:"verified"`

	Vehicles []Vehicle `gorm:"foreignKey:DriverID" json:"vehicles,omitempty"`
	Rides    []Ride    `gorm:"foreignKey:DriverID" json:"rides,omitempty"`
}

// internal/models/vehicle.go
package models

import (
	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	DriverID     uint   `json:"driver_id" gorm:"index"`
	Make         string `json:"make"`
	ModelName    string `json:"model" gorm:"column:model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"license_plate"`
	Color        string `json:"color"`
	Capacity     int    `json:"capacity"`
	VehicleType  string `json:"vehicle_type"` // "sedan", "suv", "van", "hatchback"
	PhotoURL     string `json:"photo_url"`
	Verified     bool   `json:"verified" gorm:"default:false"`
}

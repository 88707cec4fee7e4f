package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wasselni/internal/config"
	"wasselni/internal/models"
)

// CreateVehicle adds a car to the driver's garage. Newly created vehicles
// start unverified until reviewed.
func CreateVehicle(c *gin.Context) {
	driver, ok := currentDriver(c)
	if !ok {
		return
	}

	var input struct {
		Make         string `json:"make" binding:"required"`
		Model        string `json:"model" binding:"required"`
		Year         int    `json:"year" binding:"required"`
		LicensePlate string `json:"license_plate" binding:"required"`
		Color        string `json:"color"`
		Capacity     int    `json:"capacity" binding:"required"`
		VehicleType  string `json:"vehicle_type"`
		PhotoURL     string `json:"photo_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}

	vehicle := models.Vehicle{
		DriverID:     driver.ID,
		Make:         input.Make,
		ModelName:    input.Model,
		Year:         input.Year,
		LicensePlate: input.LicensePlate,
		Color:        input.Color,
		Capacity:     input.Capacity,
		VehicleType:  input.VehicleType,
		PhotoURL:     input.PhotoURL,
		Verified:     false,
	}
	if err := config.DB.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// GetMyVehicles lists the driver's garage.
func GetMyVehicles(c *gin.Context) {
	driver, ok := currentDriver(c)
	if !ok {
		return
	}
	var vehicles []models.Vehicle
	if err := config.DB.Where("driver_id = ?", driver.ID).Order("id").Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// ListVehicles is for administrative use.
func ListVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := config.DB.Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vehicles: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// DeleteVehicle removes a car from the driver's garage.
func DeleteVehicle(c *gin.Context) {
	driver, ok := currentDriver(c)
	if !ok {
		return
	}
	var vehicle models.Vehicle
	if err := config.DB.Where("id = ? AND driver_id = ?", c.Param("id"), driver.ID).First(&vehicle).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	config.DB.Delete(&vehicle)
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}

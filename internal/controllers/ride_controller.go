package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"wasselni/internal/config"
	"wasselni/internal/models"
)

// SearchRides is the passenger-facing search: filter published rides by
// departure/arrival city, travel date and seats still available.
func SearchRides(c *gin.Context) {
	query := config.DB.Model(&models.Ride{}).
		Where("status = ?", models.RideStatusPublished).
		Preload("Driver").
		Preload("Vehicle").
		Preload("Route.Stops")

	if from := c.Query("from"); from != "" {
		query = query.Where("departure_city ILIKE ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("arrival_city ILIKE ?", to)
	}
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		query = query.Where("departure_time >= ? AND departure_time < ?", day, day.AddDate(0, 0, 1))
	}
	if seats := c.Query("seats"); seats != "" {
		n, err := strconv.Atoi(seats)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seats parameter"})
			return
		}
		query = query.Where("available_seats >= ?", n)
	}

	var rides []models.Ride
	if err := query.Order("featured DESC, departure_time ASC").Find(&rides).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error searching rides: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rides})
}

// GetRide returns one ride with its driver, vehicle and route.
func GetRide(c *gin.Context) {
	var ride models.Ride
	err := config.DB.
		Preload("Driver").
		Preload("Vehicle").
		Preload("Route.Stops").
		First(&ride, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ride not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ride": ride})
}

// ListMyRides returns the authenticated driver's published rides.
func ListMyRides(c *gin.Context) {
	driver, ok := currentDriver(c)
	if !ok {
		return
	}
	var rides []models.Ride
	if err := config.DB.Where("driver_id = ?", driver.ID).
		Preload("Vehicle").
		Order("departure_time DESC").
		Find(&rides).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching rides: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rides})
}

// CancelRide marks one of the driver's rides cancelled.
func CancelRide(c *gin.Context) {
	driver, ok := currentDriver(c)
	if !ok {
		return
	}
	var ride models.Ride
	if err := config.DB.Where("id = ? AND driver_id = ?", c.Param("id"), driver.ID).First(&ride).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ride not found"})
		return
	}
	if ride.Status != models.RideStatusPublished {
		c.JSON(http.StatusConflict, gin.H{"error": "Only published rides can be cancelled"})
		return
	}

	ride.Status = models.RideStatusCancelled
	if err := config.DB.Save(&ride).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not cancel ride: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ride": ride})
}

// ListRides is the administrative view of every ride regardless of status.
func ListRides(c *gin.Context) {
	var rides []models.Ride
	if err := config.DB.Preload("Driver").Find(&rides).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing rides: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rides})
}

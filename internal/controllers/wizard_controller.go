package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"wasselni/internal/config"
	"wasselni/internal/models"
	"wasselni/internal/services"
	"wasselni/internal/wizard"
)

var wizardManager *wizard.Manager

// Init wires the wizard session manager to the database-backed ride
// service. Must run after config.InitDB.
func Init() {
	svc := services.NewRideService(config.DB)
	wizardManager = wizard.NewManager(svc, svc)
}

// currentDriver resolves the authenticated user's driver profile.
func currentDriver(c *gin.Context) (models.Driver, bool) {
	userID := uint(c.MustGet("user_id").(float64))
	var driver models.Driver
	if err := config.DB.Where("user_id = ?", userID).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "No driver profile for this account"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error fetching driver profile: " + err.Error()})
		}
		return models.Driver{}, false
	}
	return driver, true
}

// currentSession resolves the session named in the URL and checks it
// belongs to the calling driver.
func currentSession(c *gin.Context) (*wizard.Session, bool) {
	driver, ok := currentDriver(c)
	if !ok {
		return nil, false
	}
	session, err := wizardManager.Get(c.Param("id"), driver.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wizard session not found"})
		return nil, false
	}
	return session, true
}

func wizardSnapshot(s *wizard.Session) gin.H {
	rideID, submitted := s.Controller.Submitted()
	snap := gin.H{
		"session_id":      s.ID,
		"step":            s.Controller.Step(),
		"completed_steps": s.Controller.Completed(),
		"state":           s.Controller.State(),
		"vehicles":        s.Controller.Registry().Vehicles(),
	}
	if submitted {
		snap["ride_id"] = rideID
	}
	return snap
}

// StartWizard opens a fresh publishing session for the driver, with the
// vehicle registry seeded from their garage.
func StartWizard(c *gin.Context) {
	driver, ok := currentDriver(c)
	if !ok {
		return
	}
	session, err := wizardManager.Start(driver.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start wizard: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, wizardSnapshot(session))
}

// GetWizard returns the session's current step, state and vehicles.
func GetWizard(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, wizardSnapshot(session))
}

// UpdateWizardRoute replaces the route section wholesale.
func UpdateWizardRoute(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	var input wizard.RouteDetails
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route input: " + err.Error()})
		return
	}
	if err := session.Controller.SetRoute(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": session.Controller.State()})
}

// UpdateWizardVehicle replaces the vehicle & pricing section wholesale.
func UpdateWizardVehicle(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	var input wizard.VehicleAndPricing
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}
	if err := session.Controller.SetVehicleAndPricing(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": session.Controller.State()})
}

// UpdateWizardPreferences replaces the preferences section wholesale.
func UpdateWizardPreferences(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	var input wizard.Preferences
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferences input: " + err.Error()})
		return
	}
	session.Controller.SetPreferences(input)
	c.JSON(http.StatusOK, gin.H{"state": session.Controller.State()})
}

// UpdateWizardPublishing replaces the publishing section wholesale.
func UpdateWizardPublishing(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	var input wizard.Publishing
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publishing input: " + err.Error()})
		return
	}
	session.Controller.SetPublishing(input)
	c.JSON(http.StatusOK, gin.H{"state": session.Controller.State()})
}

// AddWizardVehicle adds a session-only vehicle through the sub-form. It is
// never persisted and always starts unverified.
func AddWizardVehicle(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	var input struct {
		Make     string `json:"make" binding:"required"`
		Model    string `json:"model" binding:"required"`
		Year     int    `json:"year" binding:"required"`
		Plate    string `json:"plate" binding:"required"`
		Color    string `json:"color"`
		Capacity int    `json:"capacity" binding:"required"`
		Type     string `json:"type"`
		PhotoURL string `json:"photo_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}
	vehicle := session.Controller.Registry().Add(wizard.Vehicle{
		Make:     input.Make,
		Model:    input.Model,
		Year:     input.Year,
		Plate:    input.Plate,
		Color:    input.Color,
		Capacity: input.Capacity,
		Type:     input.Type,
		PhotoURL: input.PhotoURL,
	})
	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// WizardNext advances the wizard one step if the current step validates.
func WizardNext(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	if err := session.Controller.GoNext(); err != nil {
		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"step": verr.Step, "errors": verr.Messages})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": session.Controller.Step()})
}

// WizardBack moves the wizard one step back, always allowed.
func WizardBack(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	session.Controller.GoBack()
	c.JSON(http.StatusOK, gin.H{"step": session.Controller.Step()})
}

// SubmitWizard publishes the ride. On failure the session and its state
// survive so the driver can retry.
func SubmitWizard(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	rideID, err := session.Controller.Submit()
	if err != nil {
		var verr *wizard.ValidationError
		var perr *wizard.PreconditionError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"step": verr.Step, "errors": verr.Messages})
		case errors.As(err, &perr):
			c.JSON(http.StatusBadRequest, gin.H{"error": perr.Reason})
		case errors.Is(err, wizard.ErrSubmitInProgress), errors.Is(err, wizard.ErrAlreadySubmitted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logrus.WithError(err).WithField("session_id", session.ID).Error("SubmitWizard: publish failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	state := session.Controller.State()
	wizardManager.Remove(session.ID)
	announceRide(rideID, state)

	c.JSON(http.StatusCreated, gin.H{"ride_id": rideID})
}

// AbandonWizard drops the session without publishing. Nothing is saved.
func AbandonWizard(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	wizardManager.Remove(session.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Wizard session discarded"})
}

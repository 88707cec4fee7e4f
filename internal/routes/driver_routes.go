package routes

import (
	"wasselni/internal/controllers"
	"wasselni/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DriverRoutes(r *gin.Engine) {
	driver := r.Group("/driver")
	driver.Use(middleware.RequireAuthWithRole("driver"))
	{
		wizard := driver.Group("/wizard")
		{
			wizard.POST("/", controllers.StartWizard)
			wizard.GET("/:id", controllers.GetWizard)
			wizard.PUT("/:id/route", controllers.UpdateWizardRoute)
			wizard.PUT("/:id/vehicle", controllers.UpdateWizardVehicle)
			wizard.PUT("/:id/preferences", controllers.UpdateWizardPreferences)
			wizard.PUT("/:id/publishing", controllers.UpdateWizardPublishing)
			wizard.POST("/:id/vehicles", controllers.AddWizardVehicle)
			wizard.POST("/:id/next", controllers.WizardNext)
			wizard.POST("/:id/back", controllers.WizardBack)
			wizard.POST("/:id/submit", controllers.SubmitWizard)
			wizard.DELETE("/:id", controllers.AbandonWizard)
		}

		driver.GET("/vehicles", controllers.GetMyVehicles)
		driver.POST("/vehicles", controllers.CreateVehicle)
		driver.DELETE("/vehicles/:id", controllers.DeleteVehicle)

		driver.GET("/rides", controllers.ListMyRides)
		driver.POST("/rides/:id/cancel", controllers.CancelRide)
	}
}

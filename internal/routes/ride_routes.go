package routes

import (
	"wasselni/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RideRoutes is the public passenger-facing search surface.
func RideRoutes(r *gin.Engine) {
	rides := r.Group("/rides")
	{
		rides.GET("/", controllers.SearchRides)
		rides.GET("/:id", controllers.GetRide)
	}
}

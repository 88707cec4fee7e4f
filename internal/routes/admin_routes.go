package routes

import (
	"wasselni/internal/controllers"
	"wasselni/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/users", controllers.ListUsers)
		admin.GET("/drivers", controllers.ListDrivers)
		admin.GET("/vehicles", controllers.ListVehicles)
		admin.GET("/rides", controllers.ListRides)
	}
}

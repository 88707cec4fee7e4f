package routes

import (
	"wasselni/internal/controllers"

	"github.com/gin-gonic/gin"
)

func WebSocketRoutes(r *gin.Engine) {
	wsRoutes := r.Group("/ws")
	{
		wsRoutes.GET("/rides", controllers.HandleRideEventsWebSocket)
	}
}

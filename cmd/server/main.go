package main

import (
	"log"
	"net/http"

	"wasselni/internal/config"
	"wasselni/internal/controllers"
	"wasselni/internal/logger"
	"wasselni/internal/middleware"
	"wasselni/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Wire the wizard session manager to the ride service
	controllers.Init()

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + config.GetEnv("PORT", "8080")
	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

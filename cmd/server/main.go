package main

import (
	"log"
	"net/http"
	"os"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/config"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/controllers"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/logger"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Wire the OTP mailer and payment gateway
	controllers.Setup()

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running at :" + port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, handler))
}

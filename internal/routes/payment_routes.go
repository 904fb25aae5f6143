package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/controllers"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
)

func PaymentRoutes(r *gin.Engine) {
	payments := r.Group("/api/payments")
	payments.POST("/calculate-fee", middleware.OptionalAuth(), controllers.CalculateFee)

	authed := payments.Group("")
	authed.Use(middleware.RequireAuth())
	{
		authed.POST("/create-order", controllers.CreateOrder)
		authed.POST("/verify", controllers.VerifyPayment)
		authed.GET("/history", controllers.GetPaymentHistory)
		authed.GET("/:id", controllers.GetPaymentByID)
	}
}

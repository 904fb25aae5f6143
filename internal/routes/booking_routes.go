package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/controllers"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
)

func BookingRoutes(r *gin.Engine) {
	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.RequireAuth())
	{
		bookings.POST("/", controllers.CreateBooking)
		bookings.GET("/my-bookings", controllers.ListMyBookings)
		bookings.GET("/:bookingId/tracking", controllers.ListTrackingEvents)
	}

	tracking := r.Group("/api/tracking")
	tracking.Use(middleware.RequireAuth(), middleware.RequireRoles("driver", "admin", "superadmin"))
	{
		tracking.POST("/", controllers.AddTrackingEvent)
	}
}

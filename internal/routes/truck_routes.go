package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/controllers"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
)

func TruckRoutes(r *gin.Engine) {
	trucks := r.Group("/api/trucks")
	trucks.GET("/", controllers.ListTrucks)

	admin := trucks.Group("")
	admin.Use(middleware.RequireAuth(), middleware.RequireRoles("admin", "superadmin"))
	{
		admin.POST("/", controllers.CreateTruck)
		admin.PUT("/:id", controllers.UpdateTruck)
		admin.DELETE("/:id", controllers.DeleteTruck)
	}
}

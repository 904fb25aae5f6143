package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/controllers"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
)

func LoadRoutes(r *gin.Engine) {
	loads := r.Group("/api/loads")
	loads.GET("/", middleware.OptionalAuth(), controllers.ListLoads)
	loads.GET("/:id", middleware.OptionalAuth(), controllers.GetLoadDetails)

	authed := loads.Group("")
	authed.Use(middleware.RequireAuth())
	{
		authed.POST("/", controllers.PostLoad)
		authed.PUT("/:id", controllers.UpdateLoad)
		authed.PUT("/:id/status", controllers.UpdateLoadStatus)
		authed.PUT("/:id/cancel", controllers.CancelLoad)
		authed.PUT("/:id/assign", controllers.AssignDriver)
		authed.DELETE("/:id", middleware.RequireRoles("admin", "superadmin"), controllers.DeleteLoad)
	}
}

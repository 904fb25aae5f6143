package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/controllers"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
)

func UserRoutes(r *gin.Engine) {
	users := r.Group("/api/users")
	users.Use(middleware.RequireAuth())
	{
		users.GET("/profile", controllers.GetProfile)
		users.PUT("/profile", controllers.UpdateProfile)
		users.PUT("/password", controllers.UpdatePassword)
	}

	admin := users.Group("")
	admin.Use(middleware.RequireRoles("admin", "superadmin"))
	{
		admin.GET("/", controllers.ListUsers)
		admin.PUT("/:id", controllers.UpdateUser)
		admin.DELETE("/:id", controllers.DeleteUser)
	}

	notifications := r.Group("/api/notifications")
	notifications.Use(middleware.RequireAuth())
	{
		notifications.GET("/", controllers.ListNotifications)
		notifications.PUT("/:id/read", controllers.MarkNotificationRead)
		notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
	}
}

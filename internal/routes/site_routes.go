package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/controllers"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
)

// SiteRoutes covers the public site content endpoints and their admin
// counterparts: inquiries, footer links and the contact page.
func SiteRoutes(r *gin.Engine) {
	inquiries := r.Group("/api/inquiries")
	inquiries.POST("/", controllers.SubmitInquiry)
	inquiries.GET("/", middleware.RequireAuth(), middleware.RequireRoles("admin", "superadmin"), controllers.ListInquiries)
	inquiries.PUT("/:id/handled", middleware.RequireAuth(), middleware.RequireRoles("admin", "superadmin"), controllers.MarkInquiryHandled)

	social := r.Group("/api/social-media")
	social.GET("/", controllers.ListSocialMedia)

	socialAdmin := social.Group("")
	socialAdmin.Use(middleware.RequireAuth(), middleware.RequireRoles("admin", "superadmin"))
	{
		socialAdmin.POST("/", controllers.CreateSocialMedia)
		socialAdmin.PUT("/:id", controllers.UpdateSocialMedia)
		socialAdmin.DELETE("/:id", controllers.DeleteSocialMedia)
	}

	contact := r.Group("/api/contact-info")
	contact.GET("/", controllers.GetContactInfo)
	contact.PUT("/", middleware.RequireAuth(), middleware.RequireRoles("admin", "superadmin"), controllers.UpdateContactInfo)
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/controllers"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	otp := r.Group("/api/otp")
	{
		otp.POST("/send", controllers.SendRegistrationOTP)
		otp.POST("/verify", controllers.VerifyRegistrationOTP)
		otp.POST("/resend", controllers.ResendOTP)
		otp.POST("/password-reset/send", controllers.SendPasswordResetOTP)
		otp.POST("/password-reset/verify", controllers.VerifyPasswordResetOTP)
	}
}

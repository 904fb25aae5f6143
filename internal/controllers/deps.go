package controllers

import (
	logrus "github.com/sirupsen/logrus"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/config"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/gateway"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/mailer"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/services"
)

var (
	otpSvc     *services.OtpService
	bookingSvc *services.BookingService
	payGateway *gateway.Razorpay
)

// Setup wires the controller-level collaborators. Call after config.InitDB.
// Missing gateway or SMTP credentials are tolerated at boot; the affected
// endpoints report the misconfiguration at request time.
func Setup() {
	bookingSvc = services.NewBookingService(config.DB)

	mail, err := mailer.NewFromEnv()
	if err != nil {
		logrus.Warn("SMTP not configured; OTP endpoints will be unavailable")
	} else {
		otpSvc = services.NewOtpService(config.DB, mail)
	}

	pg, err := gateway.NewFromEnv()
	if err != nil {
		logrus.Warn("Razorpay not configured; payment endpoints will be unavailable")
	} else {
		payGateway = pg
	}
}

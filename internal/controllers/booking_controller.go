package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/services"
)

// CreateBooking reserves a truck for a time window.
func CreateBooking(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var body struct {
		TruckID        uint      `json:"truck_id" binding:"required"`
		ScheduledStart time.Time `json:"scheduled_start" binding:"required"`
		ScheduledEnd   time.Time `json:"scheduled_end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	booking, err := bookingSvc.Create(actor.ID, body.TruckID, body.ScheduledStart, body.ScheduledEnd)
	switch {
	case errors.Is(err, services.ErrInvalidTimeRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, services.ErrTruckNotAvailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Truck not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create booking"})
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ListMyBookings returns the caller's bookings.
func ListMyBookings(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	bookings, err := bookingSvc.ListForUser(actor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

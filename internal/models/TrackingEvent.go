package models

import (
	"time"

	"gorm.io/gorm"
)

// Tracking event statuses.
const (
	TrackingDeparted   = "departed"
	TrackingArrivedHub = "arrived_hub"
	TrackingDelay      = "delay"
	TrackingInTransit  = "in_transit"
	TrackingDelivered  = "delivered"
)

// ValidTrackingStatus reports whether s is a known tracking status.
func ValidTrackingStatus(s string) bool {
	switch s {
	case TrackingDeparted, TrackingArrivedHub, TrackingDelay, TrackingInTransit, TrackingDelivered:
		return true
	}
	return false
}

// TrackingEvent is a progress report on a booking. Position, when the truck
// has GPS, is a WKB-encoded point (lng/lat, SRID 4326).
type TrackingEvent struct {
	gorm.Model
	BookingID  uint      `json:"booking_id" gorm:"not null;index:idx_tracking_booking_time"`
	Booking    *Booking  `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Status     string    `json:"status" gorm:"not null"`
	Location   string    `json:"location,omitempty"`
	Position   []byte    `json:"-" gorm:"type:bytea"`
	Notes      string    `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at" gorm:"index:idx_tracking_booking_time"`
}

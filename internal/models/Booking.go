package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingInProgress = "in_progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
)

// Booking reserves a platform truck for a time window. Overlapping windows on
// the same truck are rejected at creation time.
type Booking struct {
	gorm.Model
	CustomerID     uint      `json:"customer_id" gorm:"not null;index"`
	Customer       *User     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	TruckID        uint      `json:"truck_id" gorm:"not null;index:idx_booking_truck_window"`
	Truck          *Truck    `json:"truck,omitempty" gorm:"foreignKey:TruckID"`
	ScheduledStart time.Time `json:"scheduled_start" gorm:"not null;index:idx_booking_truck_window"`
	ScheduledEnd   time.Time `json:"scheduled_end" gorm:"not null;index:idx_booking_truck_window"`
	Status         string    `json:"status" gorm:"default:pending"`
}

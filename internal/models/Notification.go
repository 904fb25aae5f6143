package models

import "gorm.io/gorm"

// Notification types.
const (
	NotificationBookingUpdate = "booking_update"
	NotificationQuoteReceived = "quote_received"
	NotificationQuoteStatus   = "quote_status"
	NotificationSystem        = "system"
)

type Notification struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"not null;index:idx_notification_user_read"`
	Type    string `json:"type" gorm:"not null"`
	Message string `json:"message" gorm:"not null"`
	Read    bool   `json:"read" gorm:"default:false;index:idx_notification_user_read"`
}

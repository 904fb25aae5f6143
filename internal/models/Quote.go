package models

import (
	"time"

	"gorm.io/gorm"
)

// QuoteStatus is the lifecycle state of a transporter's bid.
type QuoteStatus string

const (
	QuotePending   QuoteStatus = "pending"
	QuoteAccepted  QuoteStatus = "accepted"
	QuoteRejected  QuoteStatus = "rejected"
	QuoteWithdrawn QuoteStatus = "withdrawn"
)

// Quote is a transporter's bid on a Load. The composite unique index enforces
// at most one quote per (load, transporter) pair; a concurrent duplicate
// submission loses at the constraint and surfaces as a conflict.
type Quote struct {
	gorm.Model
	LoadID        uint  `json:"load_id" gorm:"not null;uniqueIndex:idx_quote_load_transporter"`
	Load          *Load `json:"load,omitempty" gorm:"foreignKey:LoadID"`
	TransporterID uint  `json:"transporter_id" gorm:"not null;uniqueIndex:idx_quote_load_transporter"`
	Transporter   *User `json:"transporter,omitempty" gorm:"foreignKey:TransporterID"`

	Amount                float64     `json:"amount" gorm:"not null"`
	Currency              string      `json:"currency" gorm:"default:INR"`
	Message               string      `json:"message,omitempty"`
	EstimatedDeliveryDays *int        `json:"estimated_delivery_days,omitempty"`
	Status                QuoteStatus `json:"status" gorm:"type:varchar(20);default:pending;index"`

	RespondedAt  *time.Time `json:"responded_at,omitempty"`
	ResponseNote string     `json:"response_note,omitempty"`
}

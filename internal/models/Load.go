package models

import (
	"time"

	"gorm.io/gorm"
)

// LoadStatus is the lifecycle state of a shipment request.
type LoadStatus string

const (
	LoadOpen      LoadStatus = "open"
	LoadQuoted    LoadStatus = "quoted"
	LoadAssigned  LoadStatus = "assigned"
	LoadPickedUp  LoadStatus = "picked_up"
	LoadInTransit LoadStatus = "in_transit"
	LoadDelivered LoadStatus = "delivered"
	LoadCompleted LoadStatus = "completed"
	LoadCancelled LoadStatus = "cancelled"
)

// ValidLoadStatus reports whether s is a member of the status enum.
func ValidLoadStatus(s LoadStatus) bool {
	switch s {
	case LoadOpen, LoadQuoted, LoadAssigned, LoadPickedUp, LoadInTransit,
		LoadDelivered, LoadCompleted, LoadCancelled:
		return true
	}
	return false
}

// Load types.
const (
	LoadTypeFull = "full"
	LoadTypePart = "part"
)

// Load represents a shipment request posted by a customer. Its status moves
// through the lifecycle as quotes are accepted and the assigned driver reports
// progress. StatusHistory is append-only; rows are never rewritten.
type Load struct {
	gorm.Model
	Type            string     `json:"type" gorm:"not null"` // "full" or "part"
	SourceCity      string     `json:"source_city" gorm:"not null;index"`
	DestinationCity string     `json:"destination_city" gorm:"not null;index"`
	Material        string     `json:"material" gorm:"not null"`
	WeightMT        float64    `json:"weight_mt"`
	TruckType       string     `json:"truck_type"`
	TrucksRequired  int        `json:"trucks_required" gorm:"default:1"`
	ScheduledDate   time.Time  `json:"scheduled_date" gorm:"not null;index"`
	Status          LoadStatus `json:"status" gorm:"type:varchar(20);default:open;index"`

	PostedByID uint  `json:"posted_by_id" gorm:"not null;index"`
	PostedBy   *User `json:"posted_by,omitempty" gorm:"foreignKey:PostedByID"`

	AssignedToID *uint `json:"assigned_to_id,omitempty" gorm:"index"`
	AssignedTo   *User `json:"assigned_to,omitempty" gorm:"foreignKey:AssignedToID"`

	AcceptedQuoteID     *uint    `json:"accepted_quote_id,omitempty"`
	AcceptedQuoteAmount *float64 `json:"accepted_quote_amount,omitempty"`

	PaymentID      *uint    `json:"payment_id,omitempty"`
	FinalPaymentID *uint    `json:"final_payment_id,omitempty"`
	BookingFee     *float64 `json:"booking_fee,omitempty"`

	PickupAddress   string `json:"pickup_address,omitempty"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
	ContactPhone    string `json:"contact_phone,omitempty"`
	Notes           string `json:"notes,omitempty"`

	StatusHistory []LoadStatusEvent `json:"status_history,omitempty" gorm:"foreignKey:LoadID;constraint:OnDelete:CASCADE"`

	CancelledByID      *uint      `json:"cancelled_by_id,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
}

// LoadStatusEvent is one entry of a load's append-only history log.
type LoadStatusEvent struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	LoadID      uint       `json:"load_id" gorm:"not null;index"`
	Status      LoadStatus `json:"status" gorm:"type:varchar(20);not null"`
	ChangedByID uint       `json:"changed_by_id"`
	ChangedAt   time.Time  `json:"changed_at" gorm:"autoCreateTime"`
	Note        string     `json:"note,omitempty"`
}

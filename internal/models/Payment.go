package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment statuses follow the gateway's order lifecycle.
const (
	PaymentCreated    = "created"
	PaymentAuthorized = "authorized"
	PaymentCaptured   = "captured"
	PaymentFailed     = "failed"
	PaymentRefunded   = "refunded"
)

// Payment types.
const (
	PaymentTypeBookingFee   = "booking_fee"
	PaymentTypeFinalPayment = "final_payment"
)

// FeeBreakdown is the booking-fee snapshot stored alongside a payment so the
// charge stays explainable after the fee tables change.
type FeeBreakdown struct {
	BaseFee      int `json:"base_fee"`
	WeightFee    int `json:"weight_fee"`
	MaterialFee  int `json:"material_fee"`
	TruckTypeFee int `json:"truck_type_fee"`
	TotalFee     int `json:"total_fee"`
}

// LoadSnapshot holds the load details captured at order time; the Load record
// itself is only materialized after the payment is verified.
type LoadSnapshot struct {
	Type            string    `json:"type"`
	SourceCity      string    `json:"source_city"`
	DestinationCity string    `json:"destination_city"`
	Material        string    `json:"material"`
	WeightMT        float64   `json:"weight_mt"`
	TruckType       string    `json:"truck_type"`
	TrucksRequired  int       `json:"trucks_required"`
	ScheduledDate   time.Time `json:"scheduled_date"`
}

// Payment bridges a fee calculation and a gateway order. Amount is in paise
// (minor units). Signature verification is mandatory before the status may
// become captured.
type Payment struct {
	gorm.Model
	RazorpayOrderID   string  `json:"razorpay_order_id" gorm:"unique;not null;index"`
	RazorpayPaymentID *string `json:"razorpay_payment_id,omitempty" gorm:"index"`
	RazorpaySignature string  `json:"-"`

	Amount      int64  `json:"amount" gorm:"not null"` // paise
	Currency    string `json:"currency" gorm:"default:INR"`
	PaymentType string `json:"payment_type" gorm:"default:booking_fee"`
	Status      string `json:"status" gorm:"default:created;index"`

	FeeBreakdown FeeBreakdown `json:"fee_breakdown" gorm:"embedded;embeddedPrefix:fee_"`
	LoadDetails  LoadSnapshot `json:"load_details" gorm:"embedded;embeddedPrefix:load_"`

	UserID uint  `json:"user_id" gorm:"not null;index"`
	User   *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	LoadID *uint `json:"load_id,omitempty"`

	PaidAt        *time.Time `json:"paid_at,omitempty"`
	FailedAt      *time.Time `json:"failed_at,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`
}

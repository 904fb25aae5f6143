package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP purposes.
const (
	OtpPurposeRegistration  = "registration"
	OtpPurposePasswordReset = "password-reset"
)

// Otp is a short-lived verification code. Records are soft-deleted on
// success, expiry, or attempt exhaustion so they keep counting as issuances
// for the rate limiter, and purged for real once they age out of the rate
// window. Postgres has no TTL index so expiry is enforced by predicate.
type Otp struct {
	gorm.Model
	Email       string    `json:"email" gorm:"not null;index:idx_otp_email_purpose"`
	Code        string    `json:"-" gorm:"not null"`
	Purpose     string    `json:"purpose" gorm:"not null;index:idx_otp_email_purpose"`
	Attempts    int       `json:"attempts" gorm:"default:0"`
	MaxAttempts int       `json:"max_attempts" gorm:"default:5"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"not null;index"`
	TempData    string    `json:"-"` // pending registration payload (name, password hash)
}

// IsExpired reports whether the code is past its expiry at now.
func (o *Otp) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// AttemptsExhausted reports whether the attempt counter has reached the cap.
func (o *Otp) AttemptsExhausted() bool {
	return o.Attempts >= o.MaxAttempts
}

// RemainingAttempts returns how many tries are left after a failed match.
func (o *Otp) RemainingAttempts() int {
	remaining := o.MaxAttempts - o.Attempts
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Package mailer delivers one-time codes over SMTP.
package mailer

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"
)

// ErrNotConfigured is returned when the SMTP settings are missing.
var ErrNotConfigured = errors.New("email service not configured")

// Sender dispatches a one-time code to an address. The OTP service depends on
// this interface so tests can substitute a fake.
type Sender interface {
	SendOTP(to, code, purpose string) error
}

// SMTP is the production Sender.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

// NewFromEnv builds an SMTP mailer from SMTP_HOST, SMTP_PORT, SMTP_USER,
// SMTP_PASS and SMTP_FROM.
func NewFromEnv() (*SMTP, error) {
	host := os.Getenv("SMTP_HOST")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	if host == "" || user == "" || pass == "" {
		return nil, ErrNotConfigured
	}
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}
	return &SMTP{dialer: gomail.NewDialer(host, port, user, pass), from: from}, nil
}

var purposeText = map[string]string{
	"registration":   "complete your registration",
	"password-reset": "reset your password",
}

func (m *SMTP) SendOTP(to, code, purpose string) error {
	action, ok := purposeText[purpose]
	if !ok {
		action = "verify your identity"
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "TruckSuvidha")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your TruckSuvidha Verification Code: %s", code))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Use the code %s to %s.\n\nThis code expires in 10 minutes.\n\nIf you didn't request this code, please ignore this email.",
		code, action,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

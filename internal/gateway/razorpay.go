// Package gateway wraps the Razorpay payment gateway: order creation and the
// HMAC signature check that gates payment capture.
package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	razorpay "github.com/razorpay/razorpay-go"
)

// ErrNotConfigured is returned when the gateway credentials are missing from
// the environment.
var ErrNotConfigured = errors.New("payment gateway not configured")

// OrderCreator creates a gateway order and returns its id. Controllers depend
// on this interface so tests can substitute a fake.
type OrderCreator interface {
	CreateOrder(amountPaise int64, currency, receipt string, notes map[string]interface{}) (string, error)
}

// Razorpay is the production OrderCreator backed by the Razorpay SDK.
type Razorpay struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

// NewFromEnv builds a Razorpay gateway from RAZORPAY_KEY_ID and
// RAZORPAY_KEY_SECRET. Returns ErrNotConfigured when either is absent so the
// server can still boot without payment support.
func NewFromEnv() (*Razorpay, error) {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return nil, ErrNotConfigured
	}
	return &Razorpay{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}, nil
}

// KeyID is the public key handed to the client so it can open the checkout.
func (g *Razorpay) KeyID() string { return g.keyID }

// KeySecret is used for signature verification on the capture callback.
func (g *Razorpay) KeySecret() string { return g.keySecret }

func (g *Razorpay) CreateOrder(amountPaise int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	order, err := g.client.Order.Create(map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("create razorpay order: %w", err)
	}
	id, ok := order["id"].(string)
	if !ok || id == "" {
		return "", errors.New("razorpay order response missing id")
	}
	return id, nil
}

// VerifySignature checks the gateway's capture signature: HMAC-SHA256 over
// "orderID|paymentID" keyed with the secret, hex encoded. Must pass before a
// payment may be marked captured.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

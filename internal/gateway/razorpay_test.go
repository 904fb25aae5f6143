package gateway

import "testing"

func TestVerifySignature(t *testing.T) {
	const (
		orderID   = "order_ABC123"
		paymentID = "pay_XYZ789"
		secret    = "testsecret"
		// hex HMAC-SHA256 of "order_ABC123|pay_XYZ789" keyed with "testsecret"
		good = "8ab882b69975648bd036bb84b853484100f7addce5cead23e8a2d9ffe5ba21c8"
	)

	if !VerifySignature(orderID, paymentID, good, secret) {
		t.Error("valid signature rejected")
	}
	if VerifySignature(orderID, paymentID, good, "wrongsecret") {
		t.Error("signature accepted under the wrong secret")
	}
	if VerifySignature(orderID, "pay_TAMPERED", good, secret) {
		t.Error("signature accepted for a different payment id")
	}
	if VerifySignature(orderID, paymentID, "deadbeef", secret) {
		t.Error("garbage signature accepted")
	}
	if VerifySignature(orderID, paymentID, "", secret) {
		t.Error("empty signature accepted")
	}
}

func TestNewFromEnvRequiresCredentials(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "")
	t.Setenv("RAZORPAY_KEY_SECRET", "")
	if _, err := NewFromEnv(); err != ErrNotConfigured {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}

	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	if _, err := NewFromEnv(); err != ErrNotConfigured {
		t.Fatalf("err with secret missing = %v, want ErrNotConfigured", err)
	}

	t.Setenv("RAZORPAY_KEY_SECRET", "s3cret")
	g, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	if g.KeyID() != "rzp_test_key" || g.KeySecret() != "s3cret" {
		t.Errorf("credentials not carried: %q %q", g.KeyID(), g.KeySecret())
	}
}

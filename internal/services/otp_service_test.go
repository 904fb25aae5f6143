package services

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
)

type fakeSender struct {
	codes []string
}

func (f *fakeSender) SendOTP(to, code, purpose string) error {
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeSender) lastCode(t *testing.T) string {
	t.Helper()
	if len(f.codes) == 0 {
		t.Fatal("no code was sent")
	}
	return f.codes[len(f.codes)-1]
}

func testOtpService(t *testing.T) (*OtpService, *fakeSender, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "otp.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Otp{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sender := &fakeSender{}
	return NewOtpService(db, sender), sender, db
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(OtpCodeLength)
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if len(code) != OtpCodeLength {
		t.Fatalf("len(code) = %d, want %d", len(code), OtpCodeLength)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("code %q contains non-digit %q", code, r)
		}
	}

	// Distinct calls should essentially never collide.
	seen := map[string]bool{code: true}
	collisions := 0
	for i := 0; i < 50; i++ {
		c, err := GenerateCode(OtpCodeLength)
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if seen[c] {
			collisions++
		}
		seen[c] = true
	}
	if collisions > 2 {
		t.Errorf("%d collisions in 50 codes", collisions)
	}
}

func TestOtpExpiry(t *testing.T) {
	now := time.Now()
	otp := models.Otp{ExpiresAt: now.Add(OtpExpiry)}

	if otp.IsExpired(now) {
		t.Error("fresh code reported expired")
	}
	if otp.IsExpired(now.Add(OtpExpiry - time.Second)) {
		t.Error("code expired before its window closed")
	}
	if !otp.IsExpired(now.Add(OtpExpiry + time.Second)) {
		t.Error("code not expired after its window")
	}
}

func TestOtpAttemptAccounting(t *testing.T) {
	otp := models.Otp{Attempts: 0, MaxAttempts: 5}

	if otp.AttemptsExhausted() {
		t.Error("no attempts made yet")
	}
	if got := otp.RemainingAttempts(); got != 5 {
		t.Errorf("RemainingAttempts = %d, want 5", got)
	}

	otp.Attempts = 4
	if otp.AttemptsExhausted() {
		t.Error("one attempt should remain")
	}
	if got := otp.RemainingAttempts(); got != 1 {
		t.Errorf("RemainingAttempts = %d, want 1", got)
	}

	otp.Attempts = 5
	if !otp.AttemptsExhausted() {
		t.Error("cap reached, should be exhausted")
	}
	if got := otp.RemainingAttempts(); got != 0 {
		t.Errorf("RemainingAttempts = %d, want 0", got)
	}

	otp.Attempts = 7
	if got := otp.RemainingAttempts(); got != 0 {
		t.Errorf("RemainingAttempts past cap = %d, want 0", got)
	}
}

func TestOtpMismatchError(t *testing.T) {
	err := &OtpMismatchError{Remaining: 3}
	if err.Error() != "invalid code, 3 attempts remaining" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestIssueStoresAndSendsCode(t *testing.T) {
	svc, sender, db := testOtpService(t)

	expiresIn, err := svc.Issue("Ravi@Example.com", models.OtpPurposeRegistration, `{"name":"Ravi"}`)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if expiresIn != OtpExpiry {
		t.Errorf("expires_in = %v, want %v", expiresIn, OtpExpiry)
	}

	code := sender.lastCode(t)
	if len(code) != OtpCodeLength {
		t.Errorf("sent code %q, want %d digits", code, OtpCodeLength)
	}

	var otp models.Otp
	if err := db.Where("email = ?", "ravi@example.com").First(&otp).Error; err != nil {
		t.Fatalf("stored record: %v", err)
	}
	if otp.Code != code {
		t.Errorf("stored code %q does not match sent code %q", otp.Code, code)
	}
	if otp.TempData != `{"name":"Ravi"}` {
		t.Errorf("temp data = %q", otp.TempData)
	}
}

func TestVerifyMismatchPersistsAttempts(t *testing.T) {
	svc, sender, db := testOtpService(t)

	if _, err := svc.Issue("ravi@example.com", models.OtpPurposeRegistration, "payload"); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Each wrong code must leave a durable increment behind; otherwise the
	// attempt cap never triggers and the code can be brute-forced.
	for i := 1; i <= 2; i++ {
		_, err := svc.Verify("ravi@example.com", models.OtpPurposeRegistration, "000000")
		var mismatch *OtpMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("attempt %d: err = %v, want OtpMismatchError", i, err)
		}
		if mismatch.Remaining != 5-i {
			t.Errorf("attempt %d: remaining = %d, want %d", i, mismatch.Remaining, 5-i)
		}

		var otp models.Otp
		if err := db.Where("email = ?", "ravi@example.com").First(&otp).Error; err != nil {
			t.Fatalf("attempt %d: reload: %v", i, err)
		}
		if otp.Attempts != i {
			t.Errorf("attempt %d: persisted attempts = %d, want %d", i, otp.Attempts, i)
		}
	}

	// The right code still works while attempts remain.
	tempData, err := svc.Verify("ravi@example.com", models.OtpPurposeRegistration, sender.lastCode(t))
	if err != nil {
		t.Fatalf("Verify with correct code: %v", err)
	}
	if tempData != "payload" {
		t.Errorf("temp data = %q, want payload", tempData)
	}
}

func TestVerifyExhaustsAttempts(t *testing.T) {
	svc, sender, _ := testOtpService(t)

	if _, err := svc.Issue("ravi@example.com", models.OtpPurposeRegistration, ""); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for i := 0; i < 5; i++ {
		_, err := svc.Verify("ravi@example.com", models.OtpPurposeRegistration, "000000")
		var mismatch *OtpMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("attempt %d: err = %v, want OtpMismatchError", i+1, err)
		}
	}

	// The cap is reached; even the correct code is refused and the record
	// is retired.
	if _, err := svc.Verify("ravi@example.com", models.OtpPurposeRegistration, sender.lastCode(t)); !errors.Is(err, ErrOtpAttemptsExceeded) {
		t.Fatalf("err = %v, want ErrOtpAttemptsExceeded", err)
	}
	if _, err := svc.Verify("ravi@example.com", models.OtpPurposeRegistration, sender.lastCode(t)); !errors.Is(err, ErrOtpNotFound) {
		t.Fatalf("err after retirement = %v, want ErrOtpNotFound", err)
	}
}

func TestVerifySuccessConsumesCode(t *testing.T) {
	svc, sender, _ := testOtpService(t)

	if _, err := svc.Issue("ravi@example.com", models.OtpPurposeRegistration, "payload"); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Verify("ravi@example.com", models.OtpPurposeRegistration, sender.lastCode(t)); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if _, err := svc.Verify("ravi@example.com", models.OtpPurposeRegistration, sender.lastCode(t)); !errors.Is(err, ErrOtpNotFound) {
		t.Fatalf("replayed verify err = %v, want ErrOtpNotFound", err)
	}
}

func TestVerifyExpiredCodeIsRetired(t *testing.T) {
	svc, sender, db := testOtpService(t)

	if _, err := svc.Issue("ravi@example.com", models.OtpPurposeRegistration, ""); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := db.Model(&models.Otp{}).
		Where("email = ?", "ravi@example.com").
		Update("expires_at", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("age code: %v", err)
	}

	if _, err := svc.Verify("ravi@example.com", models.OtpPurposeRegistration, sender.lastCode(t)); !errors.Is(err, ErrOtpExpired) {
		t.Fatalf("err = %v, want ErrOtpExpired", err)
	}
	if _, err := svc.Verify("ravi@example.com", models.OtpPurposeRegistration, sender.lastCode(t)); !errors.Is(err, ErrOtpNotFound) {
		t.Fatalf("err after retirement = %v, want ErrOtpNotFound", err)
	}
}

func TestIssueRateLimit(t *testing.T) {
	svc, sender, _ := testOtpService(t)

	// Consumed codes still count as issuances inside the window.
	if _, err := svc.Issue("ravi@example.com", models.OtpPurposeRegistration, ""); err != nil {
		t.Fatalf("issue 1: %v", err)
	}
	if _, err := svc.Verify("ravi@example.com", models.OtpPurposeRegistration, sender.lastCode(t)); err != nil {
		t.Fatalf("consume 1: %v", err)
	}
	for i := 2; i <= OtpRateLimit; i++ {
		if _, err := svc.Issue("ravi@example.com", models.OtpPurposeRegistration, ""); err != nil {
			t.Fatalf("issue %d: %v", i, err)
		}
	}

	if _, err := svc.Issue("ravi@example.com", models.OtpPurposeRegistration, ""); !errors.Is(err, ErrOtpRateLimited) {
		t.Fatalf("err = %v, want ErrOtpRateLimited", err)
	}

	// A different purpose has its own window.
	if _, err := svc.Issue("ravi@example.com", models.OtpPurposePasswordReset, ""); err != nil {
		t.Fatalf("other purpose: %v", err)
	}
}

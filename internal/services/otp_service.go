package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/mailer"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
)

const (
	OtpRateLimit  = 3 // issuances per email+purpose per window
	OtpRateWindow = time.Hour
	OtpExpiry     = 10 * time.Minute
	OtpCodeLength = 6
)

var (
	ErrOtpNotFound         = errors.New("no code found")
	ErrOtpExpired          = errors.New("code has expired")
	ErrOtpAttemptsExceeded = errors.New("too many failed attempts")
	ErrOtpRateLimited      = errors.New("too many requests")
)

// OtpMismatchError reports a wrong code along with how many tries remain.
type OtpMismatchError struct {
	Remaining int
}

func (e *OtpMismatchError) Error() string {
	return fmt.Sprintf("invalid code, %d attempts remaining", e.Remaining)
}

// OtpService issues and verifies one-time codes. All writes for one
// (email, purpose) pair are serialized through a transaction-scoped advisory
// lock so concurrent requests cannot slip past the rate limiter between its
// count and the delete-then-insert sequence.
type OtpService struct {
	db   *gorm.DB
	mail mailer.Sender
}

func NewOtpService(db *gorm.DB, mail mailer.Sender) *OtpService {
	return &OtpService{db: db, mail: mail}
}

// GenerateCode produces a fixed-length numeric code from crypto/rand.
func GenerateCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate otp: %w", err)
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String(), nil
}

// Issue enforces the sliding-window rate limit, replaces any outstanding code
// for the same (email, purpose) pair, stores a fresh one and dispatches it.
// Consumed and replaced codes are soft-deleted, not purged, until they age
// out of the window: every issuance counts against the limit even after its
// code is gone. Returns the expiry window so the caller can report it.
func (s *OtpService) Issue(email, purpose, tempData string) (time.Duration, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	code, err := GenerateCode(OtpCodeLength)
	if err != nil {
		return 0, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockOtpPair(tx, email, purpose); err != nil {
			return err
		}

		// Rows older than the window no longer influence the limit; purge
		// them for real while here.
		if err := tx.Unscoped().
			Where("email = ? AND purpose = ? AND created_at < ?",
				email, purpose, time.Now().Add(-OtpRateWindow)).
			Delete(&models.Otp{}).Error; err != nil {
			return err
		}

		var issued int64
		if err := tx.Unscoped().Model(&models.Otp{}).
			Where("email = ? AND purpose = ? AND created_at >= ?",
				email, purpose, time.Now().Add(-OtpRateWindow)).
			Count(&issued).Error; err != nil {
			return err
		}
		if issued >= OtpRateLimit {
			return ErrOtpRateLimited
		}

		// Soft delete: retires the outstanding code but keeps the row as
		// issuance evidence for the window count above.
		if err := tx.Where("email = ? AND purpose = ?", email, purpose).
			Delete(&models.Otp{}).Error; err != nil {
			return err
		}

		return tx.Create(&models.Otp{
			Email:       email,
			Code:        code,
			Purpose:     purpose,
			MaxAttempts: 5,
			ExpiresAt:   time.Now().Add(OtpExpiry),
			TempData:    tempData,
		}).Error
	})
	if err != nil {
		return 0, err
	}

	if err := s.mail.SendOTP(email, code, purpose); err != nil {
		return 0, err
	}
	return OtpExpiry, nil
}

// Verify checks a submitted code. The record is retired on success, on
// expiry, and on attempt exhaustion; a mismatch increments the attempt
// counter and reports the remaining tries. On success the stored TempData is
// returned so the caller can perform the gated side effect.
//
// The failure outcomes are carried out of the transaction in a variable
// rather than returned from the closure: returning them would roll the
// transaction back and discard the very bookkeeping (attempt increments,
// retirements) they depend on.
func (s *OtpService) Verify(email, purpose, code string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var (
		tempData string
		outcome  error
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockOtpPair(tx, email, purpose); err != nil {
			return err
		}

		var otp models.Otp
		if err := tx.Where("email = ? AND purpose = ?", email, purpose).
			Order("created_at DESC").First(&otp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				outcome = ErrOtpNotFound
				return nil
			}
			return err
		}

		if otp.IsExpired(time.Now()) {
			outcome = ErrOtpExpired
			return tx.Delete(&otp).Error
		}
		if otp.AttemptsExhausted() {
			outcome = ErrOtpAttemptsExceeded
			return tx.Delete(&otp).Error
		}

		if otp.Code != code {
			otp.Attempts++
			outcome = &OtpMismatchError{Remaining: otp.RemainingAttempts()}
			return tx.Model(&otp).Update("attempts", otp.Attempts).Error
		}

		tempData = otp.TempData
		return tx.Delete(&otp).Error
	})
	if err != nil {
		return "", err
	}
	if outcome != nil {
		return "", outcome
	}
	return tempData, nil
}

// lockOtpPair takes a transaction-scoped postgres advisory lock keyed on the
// (email, purpose) pair. Advisory locks are postgres-specific; on any other
// dialect the serialization falls back to the store's own locking.
func lockOtpPair(tx *gorm.DB, email, purpose string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", email+"|"+purpose).Error
}

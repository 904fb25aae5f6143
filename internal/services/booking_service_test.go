package services

import (
	"errors"
	"testing"
	"time"
)

func TestCreateRejectsInvalidTimeRange(t *testing.T) {
	svc := NewBookingService(nil)
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
	}{
		{"end before start", start.Add(-time.Hour)},
		{"zero-length booking", start},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(1, 1, start, tc.end)
			if !errors.Is(err, ErrInvalidTimeRange) {
				t.Errorf("err = %v, want ErrInvalidTimeRange", err)
			}
		})
	}
}

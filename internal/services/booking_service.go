package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
)

var (
	ErrInvalidTimeRange  = errors.New("invalid time range")
	ErrTruckNotAvailable = errors.New("truck not available for selected time")
)

// BookingService creates availability-checked truck bookings.
type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// IsTruckAvailable reports whether no existing booking on the truck overlaps
// [start, end).
func (s *BookingService) IsTruckAvailable(tx *gorm.DB, truckID uint, start, end time.Time) (bool, error) {
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("truck_id = ? AND scheduled_start < ? AND scheduled_end > ? AND status <> ?",
			truckID, end, start, models.BookingCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Create books a truck for a customer. The availability check and insert run
// in one transaction holding a lock on the truck row, so two overlapping
// requests cannot both pass the check.
func (s *BookingService) Create(customerID, truckID uint, start, end time.Time) (*models.Booking, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	var booking *models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var truck models.Truck
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&truck, truckID).Error; err != nil {
			return err
		}

		available, err := s.IsTruckAvailable(tx, truckID, start, end)
		if err != nil {
			return err
		}
		if !available {
			return ErrTruckNotAvailable
		}

		booking = &models.Booking{
			CustomerID:     customerID,
			TruckID:        truckID,
			ScheduledStart: start,
			ScheduledEnd:   end,
			Status:         models.BookingPending,
		}
		return tx.Create(booking).Error
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// ListForUser returns the customer's bookings with the truck preloaded.
func (s *BookingService) ListForUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Where("customer_id = ?", userID).
		Preload("Truck").
		Order("scheduled_start DESC").
		Find(&bookings).Error
	return bookings, err
}

package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/config"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/policy"
)

var errLoadClosed = errors.New("load no longer accepting quotes")

type submitQuoteInput struct {
	LoadID                uint    `json:"load_id" binding:"required"`
	Amount                float64 `json:"amount" binding:"required,gt=0"`
	Message               string  `json:"message"`
	EstimatedDeliveryDays *int    `json:"estimated_delivery_days"`
}

// SubmitQuote records a transporter's bid on an open or quoted load. The
// unique (load, transporter) index decides duplicate races; flipping the load
// from open to quoted is conditional so it never overwrites a concurrent
// assignment.
func SubmitQuote(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var input submitQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if actor.Role != models.RoleDriver && !models.IsAdmin(actor.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only drivers can submit quotes"})
		return
	}

	var load models.Load
	if err := config.DB.First(&load, input.LoadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Load not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch load"})
		}
		return
	}

	if !policy.LoadAcceptsQuotes(load.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "This load is no longer accepting quotes"})
		return
	}
	if policy.IsOwner(&load, actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot quote on your own load"})
		return
	}

	quote := models.Quote{
		LoadID:                input.LoadID,
		TransporterID:         actor.ID,
		Amount:                input.Amount,
		Currency:              "INR",
		Message:               input.Message,
		EstimatedDeliveryDays: input.EstimatedDeliveryDays,
		Status:                models.QuotePending,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quote).Error; err != nil {
			return err
		}
		if load.Status == models.LoadOpen {
			// Conditional flip; a concurrent accept may already have moved the
			// load on, in which case leave it alone.
			if err := tx.Model(&models.Load{}).
				Where("id = ? AND status = ?", load.ID, models.LoadOpen).
				Update("status", models.LoadQuoted).Error; err != nil {
				return err
			}
		}
		return tx.Create(&models.Notification{
			UserID:  load.PostedByID,
			Type:    models.NotificationQuoteReceived,
			Message: fmt.Sprintf("New quote of ₹%.0f on your %s → %s load", input.Amount, load.SourceCity, load.DestinationCity),
		}).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already submitted a quote for this load"})
			return
		}
		logrus.WithError(err).Error("submit quote")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not submit quote"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Quote submitted successfully", "quote": quote})
}

// ListQuotesForLoad: the load owner and admins see every quote; any other
// caller sees only their own. Bid privacy is a hard requirement.
func ListQuotesForLoad(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var load models.Load
	if err := config.DB.First(&load, c.Param("loadId")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Load not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch load"})
		}
		return
	}

	query := config.DB.Where("load_id = ?", load.ID).
		Preload("Transporter").
		Order("created_at DESC")
	if !policy.CanSeeAllQuotes(&load, actor) {
		query = query.Where("transporter_id = ?", actor.ID)
	}

	var quotes []models.Quote
	if err := query.Find(&quotes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch quotes"})
		return
	}
	c.JSON(http.StatusOK, quotes)
}

// GetMyQuotes returns the caller's own quotes with their loads.
func GetMyQuotes(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var quotes []models.Quote
	err := config.DB.Where("transporter_id = ?", actor.ID).
		Preload("Load").
		Preload("Load.PostedBy").
		Order("created_at DESC").
		Find(&quotes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch quotes"})
		return
	}
	c.JSON(http.StatusOK, quotes)
}

func findQuoteWithLoad(c *gin.Context) (*models.Quote, *models.Load, bool) {
	var quote models.Quote
	if err := config.DB.First(&quote, c.Param("quoteId")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch quote"})
		}
		return nil, nil, false
	}

	var load models.Load
	if err := config.DB.First(&load, quote.LoadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Load not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch load"})
		}
		return nil, nil, false
	}
	return &quote, &load, true
}

// AcceptQuote accepts one pending quote and, as one transaction:
//
//  1. conditionally moves the load to assigned; the update carries a
//     "status still open/quoted" guard, so of two concurrent accepts on
//     sibling quotes exactly one wins and the loser observes a conflict;
//  2. marks the target quote accepted, guarded on it still being pending;
//  3. bulk-rejects every other pending quote on the load;
//  4. appends the history entry and notifies the winning transporter.
func AcceptQuote(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var body struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&body)

	quote, load, ok := findQuoteWithLoad(c)
	if !ok {
		return
	}

	if !policy.CanRespondToQuote(load, actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the load owner can accept quotes"})
		return
	}
	if quote.Status != models.QuotePending {
		c.JSON(http.StatusConflict, gin.H{"error": "This quote has already been processed"})
		return
	}

	now := time.Now()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// The load transition is the serialization point.
		res := tx.Model(&models.Load{}).
			Where("id = ? AND status IN ?", load.ID,
				[]models.LoadStatus{models.LoadOpen, models.LoadQuoted}).
			Updates(map[string]interface{}{
				"status":                models.LoadAssigned,
				"assigned_to_id":        quote.TransporterID,
				"accepted_quote_id":     quote.ID,
				"accepted_quote_amount": quote.Amount,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errLoadClosed
		}

		res = tx.Model(&models.Quote{}).
			Where("id = ? AND status = ?", quote.ID, models.QuotePending).
			Updates(map[string]interface{}{
				"status":        models.QuoteAccepted,
				"responded_at":  now,
				"response_note": body.Note,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errLoadClosed
		}

		if err := tx.Model(&models.Quote{}).
			Where("load_id = ? AND id <> ? AND status = ?",
				load.ID, quote.ID, models.QuotePending).
			Updates(map[string]interface{}{
				"status":        models.QuoteRejected,
				"responded_at":  now,
				"response_note": "Another quote was accepted",
			}).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.LoadStatusEvent{
			LoadID:      load.ID,
			Status:      models.LoadAssigned,
			ChangedByID: actor.ID,
			Note:        fmt.Sprintf("Assigned to driver after accepting quote of ₹%.0f", quote.Amount),
		}).Error; err != nil {
			return err
		}

		return tx.Create(&models.Notification{
			UserID:  quote.TransporterID,
			Type:    models.NotificationQuoteStatus,
			Message: fmt.Sprintf("Your quote of ₹%.0f was accepted", quote.Amount),
		}).Error
	})
	switch {
	case errors.Is(err, errLoadClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "This quote has already been processed"})
		return
	case err != nil:
		logrus.WithError(err).Error("accept quote")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not accept quote"})
		return
	}

	var accepted models.Quote
	if err := config.DB.Preload("Transporter").First(&accepted, quote.ID).Error; err != nil {
		accepted = *quote
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quote accepted successfully", "quote": accepted})
}

// RejectQuote marks a single pending quote rejected.
func RejectQuote(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var body struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&body)

	quote, load, ok := findQuoteWithLoad(c)
	if !ok {
		return
	}

	if !policy.CanRespondToQuote(load, actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the load owner can reject quotes"})
		return
	}
	if quote.Status != models.QuotePending {
		c.JSON(http.StatusConflict, gin.H{"error": "This quote has already been processed"})
		return
	}

	now := time.Now()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Quote{}).
			Where("id = ? AND status = ?", quote.ID, models.QuotePending).
			Updates(map[string]interface{}{
				"status":        models.QuoteRejected,
				"responded_at":  now,
				"response_note": body.Note,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errLoadClosed
		}
		return tx.Create(&models.Notification{
			UserID:  quote.TransporterID,
			Type:    models.NotificationQuoteStatus,
			Message: fmt.Sprintf("Your quote of ₹%.0f was rejected", quote.Amount),
		}).Error
	})
	switch {
	case errors.Is(err, errLoadClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "This quote has already been processed"})
		return
	case err != nil:
		logrus.WithError(err).Error("reject quote")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reject quote"})
		return
	}

	quote.Status = models.QuoteRejected
	quote.RespondedAt = &now
	quote.ResponseNote = body.Note
	c.JSON(http.StatusOK, gin.H{"message": "Quote rejected", "quote": quote})
}

// WithdrawQuote hard-deletes the caller's own pending quote.
func WithdrawQuote(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var quote models.Quote
	if err := config.DB.First(&quote, c.Param("quoteId")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch quote"})
		}
		return
	}

	if quote.TransporterID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only withdraw your own quotes"})
		return
	}
	if quote.Status != models.QuotePending {
		c.JSON(http.StatusConflict, gin.H{"error": "Can only withdraw pending quotes"})
		return
	}

	res := config.DB.Unscoped().
		Where("id = ? AND status = ?", quote.ID, models.QuotePending).
		Delete(&models.Quote{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not withdraw quote"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Can only withdraw pending quotes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quote withdrawn successfully"})
}

package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/config"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/fees"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/gateway"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
)

var errPaymentProcessed = errors.New("payment already processed")

type feeInput struct {
	Type            string    `json:"type"`
	SourceCity      string    `json:"source_city"`
	DestinationCity string    `json:"destination_city"`
	Material        string    `json:"material"`
	WeightMT        float64   `json:"weight_mt"`
	TruckType       string    `json:"truck_type"`
	TrucksRequired  int       `json:"trucks_required"`
	ScheduledDate   time.Time `json:"scheduled_date"`
}

func (in feeInput) breakdown() fees.Breakdown {
	return fees.Calculate(fees.Input{
		WeightMT:       in.WeightMT,
		Material:       in.Material,
		TruckType:      in.TruckType,
		TrucksRequired: in.TrucksRequired,
	})
}

// CalculateFee previews the booking fee without creating an order. Public.
func CalculateFee(c *gin.Context) {
	var input feeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Material == "" || input.TruckType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Material and truck type are required to calculate fee"})
		return
	}

	breakdown := input.breakdown()
	c.JSON(http.StatusOK, gin.H{
		"fee_breakdown": breakdown,
		"message":       fmt.Sprintf("Booking fee: ₹%d", breakdown.TotalFee),
	})
}

// CreateOrder computes the fee, opens a gateway order and records the Payment
// with a load-detail snapshot; the Load itself is only materialized once the
// payment is verified.
func CreateOrder(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	if payGateway == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Payment gateway not configured. Please contact support.",
		})
		return
	}

	var input feeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Type == "" || input.SourceCity == "" || input.DestinationCity == "" ||
		input.Material == "" || input.ScheduledDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required load details"})
		return
	}

	breakdown := input.breakdown()
	amountPaise := int64(breakdown.TotalFee) * 100

	receipt := fmt.Sprintf("load_%s", uuid.NewString())
	orderID, err := payGateway.CreateOrder(amountPaise, "INR", receipt, map[string]interface{}{
		"user_id":     fmt.Sprint(actor.ID),
		"source":      input.SourceCity,
		"destination": input.DestinationCity,
		"material":    input.Material,
	})
	if err != nil {
		logrus.WithError(err).Error("create gateway order")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment order"})
		return
	}

	trucks := input.TrucksRequired
	if trucks < 1 {
		trucks = 1
	}
	truckType := input.TruckType
	if truckType == "" {
		truckType = "Any"
	}

	payment := models.Payment{
		RazorpayOrderID: orderID,
		Amount:          amountPaise,
		Currency:        "INR",
		PaymentType:     models.PaymentTypeBookingFee,
		Status:          models.PaymentCreated,
		FeeBreakdown: models.FeeBreakdown{
			BaseFee:      breakdown.BaseFee,
			WeightFee:    breakdown.WeightFee,
			MaterialFee:  breakdown.MaterialFee,
			TruckTypeFee: breakdown.TruckTypeFee,
			TotalFee:     breakdown.TotalFee,
		},
		LoadDetails: models.LoadSnapshot{
			Type:            input.Type,
			SourceCity:      input.SourceCity,
			DestinationCity: input.DestinationCity,
			Material:        input.Material,
			WeightMT:        input.WeightMT,
			TruckType:       truckType,
			TrucksRequired:  trucks,
			ScheduledDate:   input.ScheduledDate,
		},
		UserID: actor.ID,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		logrus.WithError(err).Error("create payment record")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order": gin.H{
			"id":       orderID,
			"amount":   amountPaise,
			"currency": "INR",
		},
		"fee_breakdown": breakdown,
		"payment_id":    payment.ID,
		"key":           payGateway.KeyID(),
	})
}

type verifyPaymentInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// VerifyPayment checks the gateway signature and, on success, captures the
// payment and materializes the Load from the stored snapshot in one
// transaction. The guard on payment status makes replayed callbacks
// harmless.
func VerifyPayment(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	if payGateway == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Payment gateway not configured. Please contact support.",
		})
		return
	}

	var input verifyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payment verification details"})
		return
	}

	var payment models.Payment
	if err := config.DB.Where("razorpay_order_id = ?", input.RazorpayOrderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment record not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch payment"})
		}
		return
	}
	if payment.UserID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized access to payment"})
		return
	}

	now := time.Now()

	if !gateway.VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID,
		input.RazorpaySignature, payGateway.KeySecret()) {
		// Guarded on status so a garbage replay cannot knock an already
		// captured payment back to failed.
		config.DB.Model(&models.Payment{}).
			Where("id = ? AND status = ?", payment.ID, models.PaymentCreated).
			Updates(map[string]interface{}{
				"status":         models.PaymentFailed,
				"failed_at":      now,
				"failure_reason": "Signature verification failed",
			})
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment verification failed"})
		return
	}

	var load models.Load
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", payment.ID, models.PaymentCreated).
			Updates(map[string]interface{}{
				"razorpay_payment_id": input.RazorpayPaymentID,
				"razorpay_signature":  input.RazorpaySignature,
				"status":              models.PaymentCaptured,
				"paid_at":             now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errPaymentProcessed
		}

		bookingFee := float64(payment.Amount) / 100
		load = models.Load{
			Type:            payment.LoadDetails.Type,
			SourceCity:      payment.LoadDetails.SourceCity,
			DestinationCity: payment.LoadDetails.DestinationCity,
			Material:        payment.LoadDetails.Material,
			WeightMT:        payment.LoadDetails.WeightMT,
			TruckType:       payment.LoadDetails.TruckType,
			TrucksRequired:  payment.LoadDetails.TrucksRequired,
			ScheduledDate:   payment.LoadDetails.ScheduledDate,
			Status:          models.LoadOpen,
			PostedByID:      actor.ID,
			PaymentID:       &payment.ID,
			BookingFee:      &bookingFee,
			StatusHistory: []models.LoadStatusEvent{{
				Status:      models.LoadOpen,
				ChangedByID: actor.ID,
				Note:        "Load posted after payment",
			}},
		}
		if err := tx.Create(&load).Error; err != nil {
			return err
		}

		return tx.Model(&models.Payment{}).
			Where("id = ?", payment.ID).
			Update("load_id", load.ID).Error
	})
	switch {
	case errors.Is(err, errPaymentProcessed):
		c.JSON(http.StatusConflict, gin.H{"error": "Payment already processed"})
		return
	case err != nil:
		logrus.WithError(err).Error("verify payment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment verified and load posted successfully",
		"load":    load,
		"payment": gin.H{
			"id":     payment.ID,
			"amount": float64(payment.Amount) / 100,
			"status": models.PaymentCaptured,
		},
	})
}

// GetPaymentHistory lists the caller's payments, newest first.
func GetPaymentHistory(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var payments []models.Payment
	err := config.DB.Where("user_id = ?", actor.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&payments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch payments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// GetPaymentByID returns one payment, owner-scoped.
func GetPaymentByID(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var payment models.Payment
	if err := config.DB.First(&payment, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch payment"})
		}
		return
	}
	if payment.UserID != actor.ID && !models.IsAdmin(actor.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized access"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

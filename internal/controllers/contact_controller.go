package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/config"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
)

// contactInfoResponse renders FAQs as a JSON array rather than the stored string.
func contactInfoResponse(info *models.ContactInfo) gin.H {
	faqs := json.RawMessage("[]")
	if info.FAQs != "" && json.Valid([]byte(info.FAQs)) {
		faqs = json.RawMessage(info.FAQs)
	}
	return gin.H{
		"phone":               info.Phone,
		"phone_hours":         info.PhoneHours,
		"email":               info.Email,
		"email_response_time": info.EmailResponseTime,
		"whatsapp":            info.Whatsapp,
		"address":             info.Address,
		"map_url":             info.MapURL,
		"weekday_hours":       info.WeekdayHours,
		"saturday_hours":      info.SaturdayHours,
		"sunday_hours":        info.SundayHours,
		"faqs":                faqs,
		"updated_at":          info.UpdatedAt,
	}
}

// GetContactInfo returns the contact page content. Public; an empty record is
// returned when nothing has been configured yet.
func GetContactInfo(c *gin.Context) {
	var info models.ContactInfo
	if err := config.DB.Order("id ASC").First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, contactInfoResponse(&models.ContactInfo{}))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch contact info"})
		return
	}
	c.JSON(http.StatusOK, contactInfoResponse(&info))
}

// UpdateContactInfo upserts the single contact row. Admin-only via route
// middleware.
func UpdateContactInfo(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		Phone             *string         `json:"phone"`
		PhoneHours        *string         `json:"phone_hours"`
		Email             *string         `json:"email"`
		EmailResponseTime *string         `json:"email_response_time"`
		Whatsapp          *string         `json:"whatsapp"`
		Address           *string         `json:"address"`
		MapURL            *string         `json:"map_url"`
		WeekdayHours      *string         `json:"weekday_hours"`
		SaturdayHours     *string         `json:"saturday_hours"`
		SundayHours       *string         `json:"sunday_hours"`
		FAQs              json.RawMessage `json:"faqs"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var info models.ContactInfo
	err := config.DB.Order("id ASC").First(&info).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch contact info"})
		return
	}

	if body.Phone != nil {
		info.Phone = *body.Phone
	}
	if body.PhoneHours != nil {
		info.PhoneHours = *body.PhoneHours
	}
	if body.Email != nil {
		info.Email = *body.Email
	}
	if body.EmailResponseTime != nil {
		info.EmailResponseTime = *body.EmailResponseTime
	}
	if body.Whatsapp != nil {
		info.Whatsapp = *body.Whatsapp
	}
	if body.Address != nil {
		info.Address = *body.Address
	}
	if body.MapURL != nil {
		info.MapURL = *body.MapURL
	}
	if body.WeekdayHours != nil {
		info.WeekdayHours = *body.WeekdayHours
	}
	if body.SaturdayHours != nil {
		info.SaturdayHours = *body.SaturdayHours
	}
	if body.SundayHours != nil {
		info.SundayHours = *body.SundayHours
	}
	if body.FAQs != nil {
		if !json.Valid(body.FAQs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "faqs must be valid JSON"})
			return
		}
		info.FAQs = string(body.FAQs)
	}
	info.UpdatedByID = &actor.ID

	if err := config.DB.Save(&info).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update contact info"})
		return
	}
	c.JSON(http.StatusOK, contactInfoResponse(&info))
}

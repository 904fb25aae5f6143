package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/config"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
)

// SubmitInquiry records a contact-form message. Public.
func SubmitInquiry(c *gin.Context) {
	var body struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Phone   string `json:"phone"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	inquiry := models.Inquiry{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Message: body.Message,
	}
	if err := config.DB.Create(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not submit inquiry"})
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}

// ListInquiries returns recent inquiries for admins. ?handled=false narrows
// to open ones.
func ListInquiries(c *gin.Context) {
	query := config.DB.Order("created_at DESC").Limit(100)
	if h := c.Query("handled"); h == "true" || h == "false" {
		query = query.Where("handled = ?", h == "true")
	}

	var inquiries []models.Inquiry
	if err := query.Find(&inquiries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch inquiries"})
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

// MarkInquiryHandled closes out an inquiry.
func MarkInquiryHandled(c *gin.Context) {
	res := config.DB.Model(&models.Inquiry{}).
		Where("id = ?", c.Param("id")).
		Update("handled", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update inquiry"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inquiry marked as handled"})
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/config"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
)

// ListSocialMedia returns active footer links in display order. Public.
func ListSocialMedia(c *gin.Context) {
	var links []models.SocialMedia
	if err := config.DB.Where("is_active = ?", true).
		Order("sort_order ASC").Find(&links).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch links"})
		return
	}
	c.JSON(http.StatusOK, links)
}

// CreateSocialMedia adds a footer link. Admin-only via route middleware.
func CreateSocialMedia(c *gin.Context) {
	var body struct {
		Platform  string `json:"platform" binding:"required"`
		URL       string `json:"url" binding:"required"`
		Icon      string `json:"icon"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	icon := body.Icon
	if icon == "" {
		icon = "link"
	}
	link := models.SocialMedia{
		Platform:  body.Platform,
		URL:       body.URL,
		Icon:      icon,
		IsActive:  true,
		SortOrder: body.SortOrder,
	}
	if err := config.DB.Create(&link).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "platform already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create link"})
		return
	}
	c.JSON(http.StatusCreated, link)
}

// UpdateSocialMedia patches a footer link.
func UpdateSocialMedia(c *gin.Context) {
	var link models.SocialMedia
	if err := config.DB.First(&link, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch link"})
		}
		return
	}

	var body struct {
		Platform  *string `json:"platform"`
		URL       *string `json:"url"`
		Icon      *string `json:"icon"`
		IsActive  *bool   `json:"is_active"`
		SortOrder *int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Platform != nil {
		link.Platform = *body.Platform
	}
	if body.URL != nil {
		link.URL = *body.URL
	}
	if body.Icon != nil {
		link.Icon = *body.Icon
	}
	if body.IsActive != nil {
		link.IsActive = *body.IsActive
	}
	if body.SortOrder != nil {
		link.SortOrder = *body.SortOrder
	}

	if err := config.DB.Save(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update link"})
		return
	}
	c.JSON(http.StatusOK, link)
}

// DeleteSocialMedia removes a footer link.
func DeleteSocialMedia(c *gin.Context) {
	res := config.DB.Unscoped().Delete(&models.SocialMedia{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete link"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link deleted"})
}

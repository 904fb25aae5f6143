package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/config"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
)

// ListNotifications returns the caller's notifications, newest first.
// ?unread=true narrows to unread ones.
func ListNotifications(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	q := config.DB.Where("user_id = ?", actor.ID)
	if c.Query("unread") == "true" {
		q = q.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := q.Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch notifications"})
		return
	}

	var unread int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", actor.ID, false).Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	res := config.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, actor.ID).
		Update("read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update notification"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead marks every unread notification of the caller.
func MarkAllNotificationsRead(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	res := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", actor.ID, false).
		Update("read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "updated": res.RowsAffected})
}

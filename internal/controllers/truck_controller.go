package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/config"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
)

// ListTrucks returns the fleet. Public; the truck board renders it.
func ListTrucks(c *gin.Context) {
	query := config.DB.Limit(50)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var trucks []models.Truck
	if err := query.Find(&trucks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch trucks"})
		return
	}
	c.JSON(http.StatusOK, trucks)
}

// CreateTruck adds a fleet asset. Admin-only via route middleware.
func CreateTruck(c *gin.Context) {
	var input struct {
		PlateNumber    string  `json:"plate_number" binding:"required"`
		TruckModel     string  `json:"model"`
		CapacityWeight float64 `json:"capacity_weight" binding:"required,gt=0"`
		TruckSize      string  `json:"truck_size"`
		GPSAvailable   bool    `json:"gps_available"`
		TruckPhoto     string  `json:"truck_photo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	truck := models.Truck{
		PlateNumber:    input.PlateNumber,
		TruckModel:     input.TruckModel,
		CapacityWeight: input.CapacityWeight,
		TruckSize:      input.TruckSize,
		GPSAvailable:   input.GPSAvailable,
		TruckPhoto:     input.TruckPhoto,
		Status:         models.TruckAvailable,
	}
	if err := config.DB.Create(&truck).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Truck already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create truck"})
		return
	}

	c.JSON(http.StatusCreated, truck)
}

// UpdateTruck patches a fleet asset.
func UpdateTruck(c *gin.Context) {
	var truck models.Truck
	if err := config.DB.First(&truck, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Truck not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch truck"})
		}
		return
	}

	var input struct {
		PlateNumber    *string  `json:"plate_number"`
		TruckModel     *string  `json:"model"`
		CapacityWeight *float64 `json:"capacity_weight"`
		TruckSize      *string  `json:"truck_size"`
		GPSAvailable   *bool    `json:"gps_available"`
		TruckPhoto     *string  `json:"truck_photo"`
		Status         *string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Status != nil {
		switch *input.Status {
		case models.TruckAvailable, models.TruckInUse, models.TruckMaintenance:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid truck status"})
			return
		}
	}

	if input.PlateNumber != nil {
		truck.PlateNumber = *input.PlateNumber
	}
	if input.TruckModel != nil {
		truck.TruckModel = *input.TruckModel
	}
	if input.CapacityWeight != nil {
		truck.CapacityWeight = *input.CapacityWeight
	}
	if input.TruckSize != nil {
		truck.TruckSize = *input.TruckSize
	}
	if input.GPSAvailable != nil {
		truck.GPSAvailable = *input.GPSAvailable
	}
	if input.TruckPhoto != nil {
		truck.TruckPhoto = *input.TruckPhoto
	}
	if input.Status != nil {
		truck.Status = *input.Status
	}

	if err := config.DB.Save(&truck).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "plate number already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update truck"})
		return
	}

	c.JSON(http.StatusOK, truck)
}

// DeleteTruck removes a fleet asset.
func DeleteTruck(c *gin.Context) {
	var truck models.Truck
	if err := config.DB.First(&truck, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Truck not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch truck"})
		}
		return
	}

	if err := config.DB.Unscoped().Delete(&truck).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete truck"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Truck deleted successfully", "truck": truck})
}

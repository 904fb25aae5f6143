package controllers

import (
	"errors"
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

type postLoadInput struct {
	Type            string    `json:"type" binding:"required,oneof=full part"`
	SourceCity      string    `json:"source_city" binding:"required"`
	DestinationCity string    `json:"destination_city" binding:"required"`
	Material        string    `json:"material" binding:"required"`
	WeightMT        float64   `json:"weight_mt"`
	TruckType       string    `json:"truck_type"`
	TrucksRequired  int       `json:"trucks_required"`
	ScheduledDate   time.Time `json:"scheduled_date" binding:"required"`
	PickupAddress   string    `json:"pickup_address"`
	DeliveryAddress string    `json:"delivery_address"`
	ContactPhone    string    `json:"contact_phone"`
	Notes           string    `json:"notes"`
}

// PostLoad creates a load directly (no payment) with status open and a single
// history entry.
func PostLoad(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input postLoadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trucks := input.TrucksRequired
	if trucks < 1 {
		trucks = 1
	}

	load := models.Load{
		Type:            input.Type,
		SourceCity:      input.SourceCity,
		DestinationCity: input.DestinationCity,
		Material:        input.Material,
		WeightMT:        input.WeightMT,
		TruckType:       input.TruckType,
		TrucksRequired:  trucks,
		ScheduledDate:   input.ScheduledDate,
		Status:          models.LoadOpen,
		PostedByID:      actor.ID,
		PickupAddress:   input.PickupAddress,
		DeliveryAddress: input.DeliveryAddress,
		ContactPhone:    input.ContactPhone,
		Notes:           input.Notes,
		StatusHistory: []models.LoadStatusEvent{{
			Status:      models.LoadOpen,
			ChangedByID: actor.ID,
			Note:        "Load posted",
		}},
	}

	if err := config.DB.Create(&load).Error; err != nil {
		logrus.WithError(err).Error("create load")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create load"})
		return
	}

	c.JSON(http.StatusCreated, load)
}

// ListLoads returns recent loads, optionally filtered by source and
// destination city. Public; auth is optional.
func ListLoads(c *gin.Context) {
	query := config.DB.
		Preload("PostedBy").
		Preload("AssignedTo").
		Order("created_at DESC").
		Limit(50)

	if src := c.Query("source_city"); src != "" {
		query = query.Where("source_city = ?", src)
	}
	if dst := c.Query("destination_city"); dst != "" {
		query = query.Where("destination_city = ?", dst)
	}

	var loads []models.Load
	if err := query.Find(&loads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch loads"})
		return
	}
	c.JSON(http.StatusOK, loads)
}

func findLoad(c *gin.Context, preload bool) (*models.Load, bool) {
	query := config.DB
	if preload {
		query = query.
			Preload("PostedBy").
			Preload("AssignedTo").
			Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
				return db.Order("changed_at ASC")
			})
	}

	var load models.Load
	if err := query.First(&load, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Load not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch load"})
		}
		return nil, false
	}
	return &load, true
}

// GetLoadDetails returns the load plus the capability descriptor computed
// from the same policy predicates the write paths use.
func GetLoadDetails(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	load, ok := findLoad(c, true)
	if !ok {
		return
	}

	if !policy.CanViewLoad(load, actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view this load"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"load":        load,
		"permissions": policy.LoadCapabilities(load, actor),
	})
}

// UpdateLoadStatus transitions a load along the lifecycle. The requested
// status must be adjacent to the current one in the transition table; status
// and history always change together.
func UpdateLoadStatus(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var body struct {
		Status models.LoadStatus `json:"status" binding:"required"`
		Note   string            `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidLoadStatus(body.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	if body.Status == models.LoadCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Use the cancel endpoint to cancel a load"})
		return
	}

	load, ok := findLoad(c, false)
	if !ok {
		return
	}

	if !policy.CanChangeLoadStatus(load, actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to change load status"})
		return
	}

	note := body.Note
	if note == "" {
		note = "Status changed to " + string(body.Status)
	}

	// Drivers follow the transition table strictly; admins may jump between
	// non-terminal states to correct operator mistakes.
	allowed := policy.CanTransition(load.Status, body.Status)
	if !allowed && models.IsAdmin(actor.Role) {
		allowed = !policy.IsTerminal(load.Status) && body.Status != load.Status
	}

	// Conditional update: the transition only lands if the status is still
	// what the table said it could move from.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if !allowed {
			return errInvalidTransition
		}
		res := tx.Model(&models.Load{}).
			Where("id = ? AND status = ?", load.ID, load.Status).
			Update("status", body.Status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStatusConflict
		}
		return tx.Create(&models.LoadStatusEvent{
			LoadID:      load.ID,
			Status:      body.Status,
			ChangedByID: actor.ID,
			Note:        note,
		}).Error
	})
	switch {
	case errors.Is(err, errInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transition from " + string(load.Status) + " to " + string(body.Status),
		})
		return
	case errors.Is(err, errStatusConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Load status changed concurrently, please retry"})
		return
	case err != nil:
		logrus.WithError(err).Error("update load status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update status"})
		return
	}

	load.Status = body.Status
	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully", "load": load})
}

var (
	errInvalidTransition = errors.New("invalid status transition")
	errStatusConflict    = errors.New("status changed concurrently")
)

// CancelLoad cancels a load subject to the policy's cancellation rules.
func CancelLoad(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	load, ok := findLoad(c, false)
	if !ok {
		return
	}

	if !policy.CanCancelLoad(load, actor) {
		if policy.IsOwner(load, actor) && !policy.LoadAcceptsQuotes(load.Status) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "You cannot cancel this order as it has already been assigned or is in transit. Please contact support for assistance.",
			})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to cancel this load"})
		return
	}

	reason := body.Reason
	if reason == "" {
		reason = "No reason provided"
	}
	now := time.Now()

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Load{}).
			Where("id = ? AND status = ?", load.ID, load.Status).
			Updates(map[string]interface{}{
				"status":              models.LoadCancelled,
				"cancelled_by_id":     actor.ID,
				"cancellation_reason": reason,
				"cancelled_at":        now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStatusConflict
		}
		return tx.Create(&models.LoadStatusEvent{
			LoadID:      load.ID,
			Status:      models.LoadCancelled,
			ChangedByID: actor.ID,
			Note:        reason,
		}).Error
	})
	switch {
	case errors.Is(err, errStatusConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Load status changed concurrently, please retry"})
		return
	case err != nil:
		logrus.WithError(err).Error("cancel load")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not cancel load"})
		return
	}

	load.Status = models.LoadCancelled
	load.CancelledByID = &actor.ID
	load.CancellationReason = reason
	load.CancelledAt = &now
	c.JSON(http.StatusOK, gin.H{"message": "Load cancelled successfully", "load": load})
}

// AssignDriver sets the assigned driver directly (admin path, outside quote
// acceptance). The target must hold the driver role.
func AssignDriver(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	if !policy.CanAssignDriver(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can assign drivers"})
		return
	}

	var body struct {
		DriverID uint `json:"driver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var driver models.User
	if err := config.DB.First(&driver, body.DriverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}
	if driver.Role != models.RoleDriver {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User is not a driver"})
		return
	}

	load, ok := findLoad(c, false)
	if !ok {
		return
	}
	if !policy.CanTransition(load.Status, models.LoadAssigned) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cannot assign a driver while the load is " + string(load.Status),
		})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Load{}).
			Where("id = ? AND status = ?", load.ID, load.Status).
			Updates(map[string]interface{}{
				"assigned_to_id": body.DriverID,
				"status":         models.LoadAssigned,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStatusConflict
		}
		return tx.Create(&models.LoadStatusEvent{
			LoadID:      load.ID,
			Status:      models.LoadAssigned,
			ChangedByID: actor.ID,
			Note:        "Driver assigned",
		}).Error
	})
	switch {
	case errors.Is(err, errStatusConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Load status changed concurrently, please retry"})
		return
	case err != nil:
		logrus.WithError(err).Error("assign driver")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not assign driver"})
		return
	}

	load.Status = models.LoadAssigned
	load.AssignedToID = &body.DriverID
	c.JSON(http.StatusOK, gin.H{"message": "Driver assigned successfully", "load": load})
}

type updateLoadInput struct {
	Type            *string    `json:"type"`
	SourceCity      *string    `json:"source_city"`
	DestinationCity *string    `json:"destination_city"`
	Material        *string    `json:"material"`
	WeightMT        *float64   `json:"weight_mt"`
	TruckType       *string    `json:"truck_type"`
	TrucksRequired  *int       `json:"trucks_required"`
	ScheduledDate   *time.Time `json:"scheduled_date"`
	PickupAddress   *string    `json:"pickup_address"`
	DeliveryAddress *string    `json:"delivery_address"`
	ContactPhone    *string    `json:"contact_phone"`
	Notes           *string    `json:"notes"`
}

// UpdateLoad patches the whitelisted load fields. Status and history never
// change through this endpoint; those go through the dedicated operations.
func UpdateLoad(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	if !policy.CanEditLoad(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can update loads"})
		return
	}

	var input updateLoadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Type != nil && *input.Type != models.LoadTypeFull && *input.Type != models.LoadTypePart {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Invalid load type. Must be either "full" or "part"`})
		return
	}

	load, ok := findLoad(c, false)
	if !ok {
		return
	}

	updates := map[string]interface{}{}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.SourceCity != nil {
		updates["source_city"] = *input.SourceCity
	}
	if input.DestinationCity != nil {
		updates["destination_city"] = *input.DestinationCity
	}
	if input.Material != nil {
		updates["material"] = *input.Material
	}
	if input.WeightMT != nil {
		updates["weight_mt"] = *input.WeightMT
	}
	if input.TruckType != nil {
		updates["truck_type"] = *input.TruckType
	}
	if input.TrucksRequired != nil {
		updates["trucks_required"] = *input.TrucksRequired
	}
	if input.ScheduledDate != nil {
		updates["scheduled_date"] = *input.ScheduledDate
	}
	if input.PickupAddress != nil {
		updates["pickup_address"] = *input.PickupAddress
	}
	if input.DeliveryAddress != nil {
		updates["delivery_address"] = *input.DeliveryAddress
	}
	if input.ContactPhone != nil {
		updates["contact_phone"] = *input.ContactPhone
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	if len(updates) > 0 {
		if err := config.DB.Model(load).Updates(updates).Error; err != nil {
			logrus.WithError(err).Error("update load")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update load"})
			return
		}
	}

	c.JSON(http.StatusOK, load)
}

// DeleteLoad hard-deletes a load. Admin-only.
func DeleteLoad(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	if !models.IsAdmin(actor.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can delete loads"})
		return
	}

	load, ok := findLoad(c, false)
	if !ok {
		return
	}

	if err := config.DB.Unscoped().Delete(load).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete load"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Load deleted successfully", "load": load})
}

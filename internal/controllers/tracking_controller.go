package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/config"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
)

// AddTrackingEvent records a progress report on a booking. Lat/lng are
// optional; when present the position is stored as a WKB point.
func AddTrackingEvent(c *gin.Context) {
	var body struct {
		BookingID uint     `json:"booking_id" binding:"required"`
		Status    string   `json:"status" binding:"required"`
		Location  string   `json:"location"`
		Lat       *float64 `json:"lat"`
		Lng       *float64 `json:"lng"`
		Notes     string   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}
	if !models.ValidTrackingStatus(body.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tracking status"})
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, body.BookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	evt := models.TrackingEvent{
		BookingID:  body.BookingID,
		Status:     body.Status,
		Location:   body.Location,
		Notes:      body.Notes,
		OccurredAt: time.Now(),
	}

	if body.Lat != nil && body.Lng != nil {
		point := geom.NewPointFlat(geom.XY, []float64{*body.Lng, *body.Lat})
		point.SetSRID(4326)
		encoded, err := wkb.Marshal(point, wkb.NDR)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}
		evt.Position = encoded
	}

	if err := config.DB.Create(&evt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record event"})
		return
	}

	c.JSON(http.StatusCreated, trackingEventResponse(&evt))
}

// ListTrackingEvents returns a booking's events in order, positions rendered
// as GeoJSON.
func ListTrackingEvents(c *gin.Context) {
	var events []models.TrackingEvent
	err := config.DB.Where("booking_id = ?", c.Param("bookingId")).
		Order("occurred_at ASC").
		Find(&events).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
		return
	}

	out := make([]gin.H, 0, len(events))
	for i := range events {
		out = append(out, trackingEventResponse(&events[i]))
	}
	c.JSON(http.StatusOK, out)
}

func trackingEventResponse(evt *models.TrackingEvent) gin.H {
	resp := gin.H{
		"id":          evt.ID,
		"booking_id":  evt.BookingID,
		"status":      evt.Status,
		"location":    evt.Location,
		"notes":       evt.Notes,
		"occurred_at": evt.OccurredAt,
	}
	if len(evt.Position) > 0 {
		if g, err := wkb.Unmarshal(evt.Position); err == nil {
			if raw, err := geojson.Marshal(g); err == nil {
				resp["position"] = json.RawMessage(raw)
			}
		}
	}
	return resp
}

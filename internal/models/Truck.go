package models

import "gorm.io/gorm"

// Truck statuses.
const (
	TruckAvailable   = "available"
	TruckInUse       = "in_use"
	TruckMaintenance = "maintenance"
)

// Truck is a fleet asset owned by the platform operator. Trucks are listed
// publicly and reserved through bookings; loads never reference them directly.
type Truck struct {
	gorm.Model
	PlateNumber    string  `json:"plate_number" gorm:"unique;not null"`
	TruckModel     string  `json:"model" gorm:"column:model"`
	CapacityWeight float64 `json:"capacity_weight" gorm:"not null"`
	TruckSize      string  `json:"truck_size"`
	GPSAvailable   bool    `json:"gps_available" gorm:"default:false"`
	TruckPhoto     string  `json:"truck_photo"` // opaque URL or data URI
	Status         string  `json:"status" gorm:"default:available;index"`
}

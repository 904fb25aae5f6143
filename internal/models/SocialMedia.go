package models

import "gorm.io/gorm"

// SocialMedia is a footer link managed by admins.
type SocialMedia struct {
	gorm.Model
	Platform  string `json:"platform" gorm:"unique;not null"`
	URL       string `json:"url" gorm:"not null"`
	Icon      string `json:"icon" gorm:"default:link"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
}

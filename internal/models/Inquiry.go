package models

import "gorm.io/gorm"

// Inquiry is a contact-form submission from the marketing pages.
type Inquiry struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null"`
	Email   string `json:"email" gorm:"not null;index"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message" gorm:"not null"`
	Handled bool   `json:"handled" gorm:"default:false"`
}

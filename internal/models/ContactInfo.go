package models

import "gorm.io/gorm"

// ContactInfo is the single-row contact page content. FAQs is a JSON array of
// {question, answer} objects; the frontend renders it as-is.
type ContactInfo struct {
	gorm.Model
	Phone             string `json:"phone"`
	PhoneHours        string `json:"phone_hours"`
	Email             string `json:"email"`
	EmailResponseTime string `json:"email_response_time"`
	Whatsapp          string `json:"whatsapp"`
	Address           string `json:"address"`
	MapURL            string `json:"map_url"`
	WeekdayHours      string `json:"weekday_hours"`
	SaturdayHours     string `json:"saturday_hours"`
	SundayHours       string `json:"sunday_hours"`
	FAQs              string `json:"faqs" gorm:"type:text"`
	UpdatedByID       *uint  `json:"updated_by_id,omitempty"`
}

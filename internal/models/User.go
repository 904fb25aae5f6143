package models

import "gorm.io/gorm"

// Role values. Role is the sole authorization axis; there is no
// per-resource ACL.
const (
	RoleCustomer   = "customer"
	RoleDriver     = "driver"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

type User struct {
	gorm.Model
	Name         string  `json:"name"`
	Email        string  `json:"email" gorm:"unique;not null;index"`
	PasswordHash string  `json:"-"`
	Role         string  `json:"role" gorm:"default:customer;index"` // "customer", "driver", "admin", "superadmin"
	GoogleID     *string `json:"google_id,omitempty" gorm:"uniqueIndex"`
	Avatar       string  `json:"avatar,omitempty"`
	AuthProvider string  `json:"auth_provider" gorm:"default:local"` // "local" or "google"
}

// IsAdmin reports whether the user holds an administrative role.
func IsAdmin(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

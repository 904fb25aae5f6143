package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/config"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
)

// ListUsers returns all users. Admin-only via route middleware.
func ListUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Limit(50).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetProfile returns the caller's own record.
func GetProfile(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var user models.User
	if err := config.DB.First(&user, actor.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"has_password": user.PasswordHash != "",
	})
}

// UpdateProfile renames the caller and re-issues the token so the new name is
// reflected in the claims.
func UpdateProfile(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, actor.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Name = strings.TrimSpace(body.Name)
	if err := config.DB.Model(&user).Update("name", user.Name).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user, "token": token})
}

// UpdatePassword changes the caller's password after verifying the current
// one. OAuth-only accounts (no hash yet) may set a first password.
func UpdatePassword(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, actor.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.PasswordHash != "" {
		if body.CurrentPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is required"})
			return
		}
		if !comparePassword(body.CurrentPassword, user.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
			return
		}
	}

	hashed, err := hashPassword(body.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}
	if err := config.DB.Model(&user).Update("password_hash", hashed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

type adminUserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// UpdateUser applies the admin role-hierarchy rules:
//   - nobody changes their own role;
//   - superadmin accounts are only modified by superadmins;
//   - admins never modify other admins;
//   - only superadmins grant or revoke admin roles.
func UpdateUser(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var patch adminUserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var target models.User
	if err := config.DB.First(&target, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch user"})
		}
		return
	}

	if patch.Role != nil && *patch.Role != target.Role {
		switch {
		case target.ID == actor.ID:
			c.JSON(http.StatusForbidden, gin.H{"error": "You cannot change your own role!"})
			return
		case actor.Role == models.RoleAdmin &&
			(*patch.Role == models.RoleAdmin || *patch.Role == models.RoleSuperAdmin):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only SuperAdmin can promote users to Admin!"})
			return
		case actor.Role == models.RoleAdmin && models.IsAdmin(target.Role):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only SuperAdmin can change Admin roles!"})
			return
		}
	}
	if target.Role == models.RoleSuperAdmin && actor.Role != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "SuperAdmin accounts can only be modified by SuperAdmin!"})
		return
	}
	if actor.Role == models.RoleAdmin && target.Role == models.RoleAdmin && target.ID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admins cannot modify other admin accounts!"})
		return
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = strings.ToLower(*patch.Email)
	}
	if patch.Role != nil {
		switch *patch.Role {
		case models.RoleCustomer, models.RoleDriver, models.RoleAdmin, models.RoleSuperAdmin:
			updates["role"] = *patch.Role
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
			return
		}
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&target).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         target.ID,
		"email":      target.Email,
		"name":       target.Name,
		"role":       target.Role,
		"created_at": target.CreatedAt,
	})
}

// DeleteUser removes an account subject to the same hierarchy rules.
func DeleteUser(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var target models.User
	if err := config.DB.First(&target, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch user"})
		}
		return
	}

	switch {
	case target.ID == actor.ID:
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot delete your own account!"})
		return
	case target.Role == models.RoleSuperAdmin:
		c.JSON(http.StatusForbidden, gin.H{"error": "SuperAdmin accounts cannot be deleted!"})
		return
	case actor.Role == models.RoleAdmin && target.Role == models.RoleAdmin:
		c.JSON(http.StatusForbidden, gin.H{"error": "Admins cannot delete other admin accounts!"})
		return
	}

	if err := config.DB.Unscoped().Delete(&target).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
		"user":    gin.H{"id": target.ID, "email": target.Email},
	})
}

package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/config"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/services"
)

// registrationPayload is the pending-account data parked on the OTP record
// until the code is verified.
type registrationPayload struct {
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
}

func otpServiceReady(c *gin.Context) bool {
	if otpSvc == nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Email service not configured. Please contact support."})
		return false
	}
	return true
}

func respondOtpIssueError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrOtpRateLimited) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "Too many OTP requests. Please try again later.",
			"retry_after": int(services.OtpRateWindow.Minutes()),
		})
		return
	}
	logrus.WithError(err).Error("issue otp")
	c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send OTP"})
}

// SendRegistrationOTP starts email-verified registration: the account is not
// created until the code is verified.
func SendRegistrationOTP(c *gin.Context) {
	if !otpServiceReady(c) {
		return
	}

	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(body.Email)
	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered. Please login instead."})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up user"})
		return
	}

	hashed, err := hashPassword(body.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}
	tempData, _ := json.Marshal(registrationPayload{Name: body.Name, PasswordHash: hashed})

	expiresIn, err := otpSvc.Issue(email, models.OtpPurposeRegistration, string(tempData))
	if err != nil {
		respondOtpIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "OTP sent successfully",
		"email":      email,
		"expires_in": int(expiresIn.Seconds()),
	})
}

// VerifyRegistrationOTP consumes the code and creates the account parked on
// it, then issues a JWT.
func VerifyRegistrationOTP(c *gin.Context) {
	if !otpServiceReady(c) {
		return
	}

	var body struct {
		Email string `json:"email" binding:"required,email"`
		Otp   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(body.Email)
	tempData, err := otpSvc.Verify(email, models.OtpPurposeRegistration, body.Otp)
	if err != nil {
		respondOtpVerifyError(c, err)
		return
	}

	var payload registrationPayload
	if err := json.Unmarshal([]byte(tempData), &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No pending registration found. Please request a new OTP."})
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: payload.PasswordHash,
		Name:         payload.Name,
		Role:         models.RoleCustomer,
		AuthProvider: "local",
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered. Please login."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful!",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

func respondOtpVerifyError(c *gin.Context, err error) {
	var mismatch *services.OtpMismatchError
	switch {
	case errors.Is(err, services.ErrOtpNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No OTP found. Please request a new one."})
	case errors.Is(err, services.ErrOtpExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "OTP has expired. Please request a new one."})
	case errors.Is(err, services.ErrOtpAttemptsExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many failed attempts. Please request a new OTP."})
	case errors.As(err, &mismatch):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":              fmt.Sprintf("Invalid OTP. %d attempts remaining.", mismatch.Remaining),
			"remaining_attempts": mismatch.Remaining,
		})
	default:
		logrus.WithError(err).Error("verify otp")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify OTP"})
	}
}

// ResendOTP re-issues a registration code under the same rate limit.
func ResendOTP(c *gin.Context) {
	if !otpServiceReady(c) {
		return
	}

	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(body.Email)
	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered. Please login."})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up user"})
		return
	}

	tempData := ""
	if body.Password != "" {
		hashed, err := hashPassword(body.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
			return
		}
		raw, _ := json.Marshal(registrationPayload{Name: body.Name, PasswordHash: hashed})
		tempData = string(raw)
	}

	expiresIn, err := otpSvc.Issue(email, models.OtpPurposeRegistration, tempData)
	if err != nil {
		respondOtpIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "New OTP sent successfully",
		"expires_in": int(expiresIn.Seconds()),
	})
}

// SendPasswordResetOTP issues a reset code. The response does not reveal
// whether the account exists.
func SendPasswordResetOTP(c *gin.Context) {
	if !otpServiceReady(c) {
		return
	}

	var body struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(body.Email)
	neutral := gin.H{
		"message":    "If an account exists with this email, you will receive a password reset code.",
		"email":      email,
		"expires_in": int(services.OtpExpiry.Seconds()),
	}

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, neutral)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up user"})
		return
	}
	if user.AuthProvider == "google" && user.PasswordHash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This account uses Google Sign-In. Please login with Google instead."})
		return
	}

	if _, err := otpSvc.Issue(email, models.OtpPurposePasswordReset, ""); err != nil {
		respondOtpIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, neutral)
}

// VerifyPasswordResetOTP consumes the reset code and replaces the password.
func VerifyPasswordResetOTP(c *gin.Context) {
	if !otpServiceReady(c) {
		return
	}

	var body struct {
		Email       string `json:"email" binding:"required,email"`
		Otp         string `json:"otp" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(body.Email)
	if _, err := otpSvc.Verify(email, models.OtpPurposePasswordReset, body.Otp); err != nil {
		respondOtpVerifyError(c, err)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return
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

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful! You can now login with your new password."})
}

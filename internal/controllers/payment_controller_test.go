package controllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/config"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/gateway"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testGatewaySecret = "testsecret"

func setupPaymentTest(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "payments.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Payment{}, &models.Load{},
		&models.LoadStatusEvent{}, &models.Notification{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db

	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", testGatewaySecret)
	gw, err := gateway.NewFromEnv()
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}
	payGateway = gw
	t.Cleanup(func() { payGateway = nil })

	return db
}

func verifyRouter(userID uint) *gin.Engine {
	r := gin.New()
	r.POST("/verify", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", models.RoleCustomer)
		c.Next()
	}, VerifyPayment)
	return r
}

func signOrder(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testGatewaySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func postVerify(t *testing.T, r *gin.Engine, orderID, paymentID, signature string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(gin.H{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signature,
	})
	req := httptest.NewRequest(http.MethodPost, "/verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedPayment(t *testing.T, db *gorm.DB, orderID, status string) *models.Payment {
	t.Helper()
	payment := models.Payment{
		RazorpayOrderID: orderID,
		Amount:          54900,
		Currency:        "INR",
		PaymentType:     models.PaymentTypeBookingFee,
		Status:          status,
		FeeBreakdown: models.FeeBreakdown{
			BaseFee: 99, WeightFee: 150, MaterialFee: 200, TruckTypeFee: 100, TotalFee: 549,
		},
		LoadDetails: models.LoadSnapshot{
			Type:            models.LoadTypeFull,
			SourceCity:      "Mumbai",
			DestinationCity: "Delhi",
			Material:        "Chemicals",
			WeightMT:        15,
			TruckType:       "Any",
			TrucksRequired:  1,
			ScheduledDate:   time.Now().Add(48 * time.Hour),
		},
		UserID: 7,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return &payment
}

func TestVerifyPaymentCapturesAndPostsLoad(t *testing.T) {
	db := setupPaymentTest(t)
	payment := seedPayment(t, db, "order_CAP1", models.PaymentCreated)
	r := verifyRouter(7)

	w := postVerify(t, r, "order_CAP1", "pay_1", signOrder("order_CAP1", "pay_1"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var reloaded models.Payment
	if err := db.First(&reloaded, payment.ID).Error; err != nil {
		t.Fatalf("reload payment: %v", err)
	}
	if reloaded.Status != models.PaymentCaptured {
		t.Errorf("payment status = %s, want captured", reloaded.Status)
	}
	if reloaded.LoadID == nil {
		t.Fatal("payment not linked to a load")
	}

	var load models.Load
	if err := db.Preload("StatusHistory").First(&load, *reloaded.LoadID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if load.Status != models.LoadOpen {
		t.Errorf("load status = %s, want open", load.Status)
	}
	if load.PostedByID != 7 {
		t.Errorf("posted_by = %d, want 7", load.PostedByID)
	}
	if len(load.StatusHistory) != 1 {
		t.Errorf("history entries = %d, want 1", len(load.StatusHistory))
	}
}

func TestVerifyPaymentReplayConflicts(t *testing.T) {
	db := setupPaymentTest(t)
	seedPayment(t, db, "order_RPL1", models.PaymentCreated)
	r := verifyRouter(7)

	if w := postVerify(t, r, "order_RPL1", "pay_1", signOrder("order_RPL1", "pay_1")); w.Code != http.StatusOK {
		t.Fatalf("first verify: status = %d, body = %s", w.Code, w.Body.String())
	}

	w := postVerify(t, r, "order_RPL1", "pay_1", signOrder("order_RPL1", "pay_1"))
	if w.Code != http.StatusConflict {
		t.Errorf("replay status = %d, want 409", w.Code)
	}

	var loads int64
	db.Model(&models.Load{}).Count(&loads)
	if loads != 1 {
		t.Errorf("loads materialized = %d, want 1", loads)
	}
}

func TestVerifyPaymentBadSignatureKeepsCapturedPayment(t *testing.T) {
	db := setupPaymentTest(t)
	payment := seedPayment(t, db, "order_SIG1", models.PaymentCaptured)
	r := verifyRouter(7)

	w := postVerify(t, r, "order_SIG1", "pay_1", "deadbeef")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	// A garbage replay must not knock an already captured payment back.
	var reloaded models.Payment
	if err := db.First(&reloaded, payment.ID).Error; err != nil {
		t.Fatalf("reload payment: %v", err)
	}
	if reloaded.Status != models.PaymentCaptured {
		t.Errorf("payment status = %s, want captured", reloaded.Status)
	}
}

func TestVerifyPaymentBadSignatureFailsCreatedPayment(t *testing.T) {
	db := setupPaymentTest(t)
	payment := seedPayment(t, db, "order_SIG2", models.PaymentCreated)
	r := verifyRouter(7)

	w := postVerify(t, r, "order_SIG2", "pay_1", "deadbeef")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var reloaded models.Payment
	if err := db.First(&reloaded, payment.ID).Error; err != nil {
		t.Fatalf("reload payment: %v", err)
	}
	if reloaded.Status != models.PaymentFailed {
		t.Errorf("payment status = %s, want failed", reloaded.Status)
	}
	if reloaded.FailureReason == "" {
		t.Error("failure reason not recorded")
	}
}

func TestVerifyPaymentWrongOwner(t *testing.T) {
	db := setupPaymentTest(t)
	seedPayment(t, db, "order_OWN1", models.PaymentCreated)
	r := verifyRouter(99)

	w := postVerify(t, r, "order_OWN1", "pay_1", signOrder("order_OWN1", "pay_1"))
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthEndpoint(t *testing.T) {
	r := SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := SetupRouter()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/loads/"},
		{http.MethodPost, "/api/quotes/"},
		{http.MethodGet, "/api/quotes/my-quotes"},
		{http.MethodPost, "/api/payments/create-order"},
		{http.MethodGet, "/api/payments/history"},
		{http.MethodGet, "/api/users/profile"},
		{http.MethodPost, "/api/bookings/"},
		{http.MethodGet, "/api/notifications/"},
		{http.MethodPost, "/api/trucks/"},
		{http.MethodGet, "/api/inquiries/"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", tc.method, tc.path, w.Code)
		}
	}
}

func TestPublicRoutesAreOpen(t *testing.T) {
	r := SetupRouter()

	// These must not demand a token; anything but 401/403/404 is fine here
	// (they may still 500 without a database behind them).
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/loads/"},
		{http.MethodGet, "/api/trucks/"},
		{http.MethodGet, "/api/social-media/"},
		{http.MethodGet, "/api/contact-info/"},
		{http.MethodPost, "/api/payments/calculate-fee"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusUnauthorized || w.Code == http.StatusForbidden || w.Code == http.StatusNotFound {
			t.Errorf("%s %s: status = %d, should be publicly routable", tc.method, tc.path, w.Code)
		}
	}
}

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"allyoucangym/internal/announcement"
	"allyoucangym/internal/auth"
	"allyoucangym/internal/booking"
	"allyoucangym/internal/gym"
	"allyoucangym/internal/gymadmin"
	"allyoucangym/internal/payment"
	"allyoucangym/internal/session"
	"allyoucangym/internal/subscription"
	"allyoucangym/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoutedEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	require.NotPanics(t, func() {
		registerRoutes(router, auth.AuthMiddleware("test-secret"), nil, handlers{
			user:         user.NewHandler(nil),
			gym:          gym.NewHandler(nil),
			session:      session.NewHandler(nil),
			booking:      booking.NewHandler(nil),
			subscription: subscription.NewHandler(nil),
			payment:      payment.NewHandler(nil),
			admin:        gymadmin.NewHandler(nil),
			announcement: announcement.NewHandler(nil),
		})
	})
	return router
}

func TestRoutesRegistered(t *testing.T) {
	router := newRoutedEngine(t)

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"POST /api/users/:userId/sessions",
		"DELETE /api/users/:userId/sessions/:sessionId",
		"GET /api/users/:userId/sessions",
		"POST /api/users/:userId/subscription",
		"GET /api/subscriptions/subscriptionPackages/:packageKey",
		"POST /api/payments/checkout/:packageKey",
		"GET /api/gyms/filter",
		"GET /api/sessions/search",
		"POST /api/gymAdmins/:adminId/gyms",
		"PUT /api/announcements/:announcementId",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newRoutedEngine(t)
	const id = "0e7c5d8a-1f2b-4c3d-9e4f-5a6b7c8d9e0f"

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/users/" + id + "/sessions"},
		{http.MethodGet, "/api/users/" + id + "/subscription"},
		{http.MethodPost, "/api/payments/checkout/basic_monthly"},
		{http.MethodPost, "/api/gyms"},
		{http.MethodDelete, "/api/sessions/" + id},
		{http.MethodPost, "/api/announcements"},
		{http.MethodPost, "/api/gymAdmins/" + id + "/gyms"},
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
	}
}

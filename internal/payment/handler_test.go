package payment

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"allyoucangym/internal/auth"
	"allyoucangym/internal/subscription"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct{ mock.Mock }

func (m *MockService) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CheckoutResult), args.Error(1)
}

func (m *MockService) History(ctx context.Context, userID string, limit, offset int) ([]Payment, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]Payment), args.Error(1)
}

func newRouter(svc Service, principal string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if principal != "" {
			auth.SetPrincipal(c, principal, auth.RoleUser)
		}
		c.Next()
	})
	r.POST("/api/payments/checkout/:packageKey", h.Checkout)
	r.GET("/api/payments/history", h.History)
	return r
}

func TestHandler_CheckoutUsesPrincipalAndIgnoresAmount(t *testing.T) {
	svc := new(MockService)
	svc.On("Checkout", mock.Anything, CheckoutInput{
		UserID: "u1", PackageKey: "basic_monthly", CardNumber: "4111111111111111", ExpiryDate: "12/99", CVV: "123",
	}).Return(&CheckoutResult{TransactionID: "txn_1", Status: StatusSuccess, Amount: 2999}, nil)

	w := httptest.NewRecorder()
	newRouter(svc, "u1").ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/payments/checkout/basic_monthly",
		bytes.NewBufferString(`{"cardNumber":"4111111111111111","expiryDate":"12/99","cvv":"123","amount":1}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"amount":2999`)
	svc.AssertExpectations(t)
}

func TestHandler_CheckoutValidationFailure(t *testing.T) {
	svc := new(MockService)
	svc.On("Checkout", mock.Anything, mock.Anything).Return(nil, ErrInvalidCardNumber)

	w := httptest.NewRecorder()
	newRouter(svc, "u1").ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/payments/checkout/basic_monthly",
		bytes.NewBufferString(`{"cardNumber":"1234","expiryDate":"12/99","cvv":"123"}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cardNumber must be a 16 digit number")
}

func TestHandler_CheckoutUnknownPackage(t *testing.T) {
	svc := new(MockService)
	svc.On("Checkout", mock.Anything, mock.Anything).Return(nil, subscription.ErrPackageNotFound)

	w := httptest.NewRecorder()
	newRouter(svc, "u1").ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/payments/checkout/gold",
		bytes.NewBufferString(`{}`)))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_CheckoutWithoutPrincipal(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(new(MockService), "").ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/payments/checkout/basic_monthly",
		bytes.NewBufferString(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_History(t *testing.T) {
	svc := new(MockService)
	svc.On("History", mock.Anything, "u1", 10, 0).Return([]Payment{{TransactionID: "txn_1"}}, nil)

	w := httptest.NewRecorder()
	newRouter(svc, "u1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/payments/history?limit=10", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "txn_1")
}

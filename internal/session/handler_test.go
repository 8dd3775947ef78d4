package session

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct{ mock.Mock }

func (m *MockService) Create(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockService) List(ctx context.Context) ([]Session, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Session), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id string) (*Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id string, req UpdateSessionRequest) (*Session, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) Search(ctx context.Context, keyword string) ([]Session, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Session), args.Error(1)
}

const (
	sessionID = "3f1e2d4c-5b6a-4978-8a9b-0c1d2e3f4a5b"
	gymID     = "9d3c2b1a-0f9e-4d8c-b7a6-5e4d3c2b1a09"
)

func newRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.GET("/api/sessions/search", h.SearchSessions)
	r.GET("/api/sessions/:sessionId", h.GetSession)
	r.POST("/api/sessions", h.CreateSession)
	r.PUT("/api/sessions/:sessionId", h.UpdateSession)
	r.DELETE("/api/sessions/:sessionId", h.DeleteSession)
	return r
}

func TestHandler_CreateSessionValidation(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(new(MockService)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/sessions",
		bytes.NewBufferString(`{"gymId":"`+gymID+`","name":"Spin","dateTime":"2026-11-02T18:00:00Z"}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "capacity")
}

func TestHandler_CreateSession(t *testing.T) {
	svc := new(MockService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(r CreateSessionRequest) bool {
		return r.GymID == gymID && r.Capacity == 10
	})).Return(&Session{ID: sessionID, GymID: gymID, Capacity: 10}, nil)

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/sessions",
		bytes.NewBufferString(`{"gymId":"`+gymID+`","name":"Spin","dateTime":"2026-11-02T18:00:00Z","capacity":10}`)))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), sessionID)
	svc.AssertExpectations(t)
}

func TestHandler_GetSessionInvalidID(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(new(MockService)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid sessionId")
}

func TestHandler_UpdateSessionCapacityConflict(t *testing.T) {
	svc := new(MockService)
	svc.On("Update", mock.Anything, sessionID, mock.Anything).Return(nil, ErrCapacityBelowParticipants)

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/sessions/"+sessionID,
		bytes.NewBufferString(`{"capacity":1}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Capacity cannot be lower")
}

func TestHandler_SearchSessionsBlank(t *testing.T) {
	svc := new(MockService)
	svc.On("Search", mock.Anything, "").Return([]Session{}, nil)

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/search", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestHandler_DeleteSession(t *testing.T) {
	svc := new(MockService)
	svc.On("Delete", mock.Anything, sessionID).Return(nil)

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/sessions/"+sessionID, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

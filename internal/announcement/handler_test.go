package announcement

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"allyoucangym/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct{ mock.Mock }

func (m *MockService) Create(ctx context.Context, req CreateRequest) (*Announcement, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Announcement), args.Error(1)
}

func (m *MockService) List(ctx context.Context, sessionID string) ([]Announcement, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Announcement), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id string) (*Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Announcement), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id string, req UpdateRequest) (*Announcement, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Announcement), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

const (
	sessionID      = "5c4b3a29-1807-4f6e-9d5c-4b3a29180706"
	announcementID = "9f8e7d6c-5b4a-4392-8170-6f5e4d3c2b1a"
)

func newRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.POST("/api/announcements", h.CreateAnnouncement)
	r.GET("/api/announcements", h.ListAnnouncements)
	r.GET("/api/announcements/:announcementId", h.GetAnnouncement)
	r.PUT("/api/announcements/:announcementId", h.UpdateAnnouncement)
	r.DELETE("/api/announcements/:announcementId", h.DeleteAnnouncement)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAnnouncementHandler(t *testing.T) {
	svc := new(MockService)
	r := newRouter(svc)

	req := CreateRequest{SessionID: sessionID, Content: "Bring water"}
	svc.On("Create", mock.Anything, req).Return(&Announcement{ID: announcementID, SessionID: sessionID, Content: "Bring water"}, nil)

	w := do(r, http.MethodPost, "/api/announcements", `{"sessionId":"`+sessionID+`","content":"Bring water"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), announcementID)
}

func TestCreateAnnouncementHandlerErrors(t *testing.T) {
	svc := new(MockService)
	r := newRouter(svc)

	w := do(r, http.MethodPost, "/api/announcements", `{"content":"Bring water"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "sessionID is required")

	svc.On("Create", mock.Anything, mock.Anything).Return(nil, session.ErrSessionNotFound)
	w = do(r, http.MethodPost, "/api/announcements", `{"sessionId":"`+sessionID+`","content":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Session not found")
}

func TestListAnnouncementsHandler(t *testing.T) {
	svc := new(MockService)
	r := newRouter(svc)

	svc.On("List", mock.Anything, sessionID).Return([]Announcement{{ID: announcementID}}, nil)
	svc.On("List", mock.Anything, "").Return([]Announcement{}, nil)

	w := do(r, http.MethodGet, "/api/announcements?sessionId="+sessionID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), announcementID)

	w = do(r, http.MethodGet, "/api/announcements", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)

	w = do(r, http.MethodGet, "/api/announcements?sessionId=bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAnnouncementHandlerNotFound(t *testing.T) {
	svc := new(MockService)
	r := newRouter(svc)

	svc.On("Get", mock.Anything, announcementID).Return(nil, ErrAnnouncementNotFound)

	w := do(r, http.MethodGet, "/api/announcements/"+announcementID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Announcement not found")
}

func TestUpdateAndDeleteAnnouncementHandler(t *testing.T) {
	svc := new(MockService)
	r := newRouter(svc)

	svc.On("Update", mock.Anything, announcementID, UpdateRequest{Content: "Moved to room 2"}).
		Return(&Announcement{ID: announcementID, Content: "Moved to room 2"}, nil)
	svc.On("Delete", mock.Anything, announcementID).Return(nil)

	w := do(r, http.MethodPut, "/api/announcements/"+announcementID, `{"content":"Moved to room 2"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPut, "/api/announcements/"+announcementID, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/api/announcements/"+announcementID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

package announcement

import (
	"net/http"

	"allyoucangym/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// CreateAnnouncement godoc
// @Summary      Post an announcement to a session
// @Tags         announcements
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "Announcement"
// @Success      201      {object}  api.Response{data=Announcement}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/announcements [post]
func (h *Handler) CreateAnnouncement(c *gin.Context) {
	var req CreateRequest
	if !api.BindJSON(c, &req) {
		return
	}

	a, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	api.Created(c, "Announcement created successfully", a)
}

// ListAnnouncements godoc
// @Summary      List announcements
// @Tags         announcements
// @Produce      json
// @Param        sessionId  query     string  false  "Only announcements of this session"
// @Success      200        {object}  api.Response{data=[]Announcement}
// @Failure      400        {object}  api.ErrorResponse
// @Router       /api/announcements [get]
func (h *Handler) ListAnnouncements(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID != "" {
		if _, err := uuid.Parse(sessionID); err != nil {
			api.Fail(c, http.StatusBadRequest, "Invalid sessionId", "Invalid sessionId")
			return
		}
	}

	list, err := h.svc.List(c.Request.Context(), sessionID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	api.OK(c, "Announcements retrieved successfully", list)
}

// GetAnnouncement godoc
// @Summary      Get announcement
// @Tags         announcements
// @Produce      json
// @Param        announcementId  path      string  true  "Announcement ID"
// @Success      200             {object}  api.Response{data=Announcement}
// @Failure      404             {object}  api.ErrorResponse
// @Router       /api/announcements/{announcementId} [get]
func (h *Handler) GetAnnouncement(c *gin.Context) {
	id, ok := api.PathID(c, "announcementId")
	if !ok {
		return
	}

	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	api.OK(c, "Announcement retrieved successfully", a)
}

// UpdateAnnouncement godoc
// @Summary      Edit announcement
// @Tags         announcements
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        announcementId  path      string         true  "Announcement ID"
// @Param        request         body      UpdateRequest  true  "New content"
// @Success      200             {object}  api.Response{data=Announcement}
// @Failure      400             {object}  api.ErrorResponse
// @Failure      403             {object}  api.ErrorResponse
// @Failure      404             {object}  api.ErrorResponse
// @Router       /api/announcements/{announcementId} [put]
func (h *Handler) UpdateAnnouncement(c *gin.Context) {
	id, ok := api.PathID(c, "announcementId")
	if !ok {
		return
	}

	var req UpdateRequest
	if !api.BindJSON(c, &req) {
		return
	}

	a, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	api.OK(c, "Announcement updated successfully", a)
}

// DeleteAnnouncement godoc
// @Summary      Delete announcement
// @Tags         announcements
// @Security     BearerAuth
// @Produce      json
// @Param        announcementId  path      string  true  "Announcement ID"
// @Success      200             {object}  api.Response
// @Failure      403             {object}  api.ErrorResponse
// @Failure      404             {object}  api.ErrorResponse
// @Router       /api/announcements/{announcementId} [delete]
func (h *Handler) DeleteAnnouncement(c *gin.Context) {
	id, ok := api.PathID(c, "announcementId")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}

	api.OK(c, "Announcement deleted successfully", nil)
}

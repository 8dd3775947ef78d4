package session

import (
	"allyoucangym/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListSessions godoc
// @Summary      List sessions
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  api.Response{data=[]Session}
// @Router       /api/sessions [get]
func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.svc.List(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Sessions retrieved successfully", sessions)
}

// GetSession godoc
// @Summary      Get session
// @Tags         sessions
// @Produce      json
// @Param        sessionId  path      string  true  "Session ID"
// @Success      200        {object}  api.Response{data=Session}
// @Failure      404        {object}  api.ErrorResponse
// @Router       /api/sessions/{sessionId} [get]
func (h *Handler) GetSession(c *gin.Context) {
	id, ok := api.PathID(c, "sessionId")
	if !ok {
		return
	}

	sess, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Session retrieved successfully", sess)
}

// SearchSessions godoc
// @Summary      Search sessions by keyword
// @Tags         sessions
// @Produce      json
// @Param        keyword  query     string  false "Keyword matched against name and description"
// @Success      200      {object}  api.Response{data=[]Session}
// @Failure      400      {object}  api.ErrorResponse
// @Router       /api/sessions/search [get]
func (h *Handler) SearchSessions(c *gin.Context) {
	sessions, err := h.svc.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Sessions retrieved successfully", sessions)
}

// CreateSession godoc
// @Summary      Create session
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateSessionRequest  true  "Session data"
// @Success      201      {object}  api.Response{data=Session}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if !api.BindJSON(c, &req) {
		return
	}

	sess, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.Created(c, "Session created successfully", sess)
}

// UpdateSession godoc
// @Summary      Update session
// @Tags         sessions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        sessionId  path      string                true  "Session ID"
// @Param        request    body      UpdateSessionRequest  true  "Fields to change"
// @Success      200        {object}  api.Response{data=Session}
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /api/sessions/{sessionId} [put]
func (h *Handler) UpdateSession(c *gin.Context) {
	id, ok := api.PathID(c, "sessionId")
	if !ok {
		return
	}
	var req UpdateSessionRequest
	if !api.BindJSON(c, &req) {
		return
	}

	sess, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Session updated successfully", sess)
}

// DeleteSession godoc
// @Summary      Delete session
// @Tags         sessions
// @Security     BearerAuth
// @Produce      json
// @Param        sessionId  path      string  true  "Session ID"
// @Success      200        {object}  api.Response
// @Failure      404        {object}  api.ErrorResponse
// @Router       /api/sessions/{sessionId} [delete]
func (h *Handler) DeleteSession(c *gin.Context) {
	id, ok := api.PathID(c, "sessionId")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Session deleted successfully", nil)
}

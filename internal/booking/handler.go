package booking

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

// BookSession godoc
// @Summary      Book a session
// @Description  Reserves one place in the session for the user.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userId   path      string       true  "User ID"
// @Param        request  body      BookRequest  true  "Session to book"
// @Success      200      {object}  api.Response{data=session.Session}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/users/{userId}/sessions [post]
func (h *Handler) BookSession(c *gin.Context) {
	userID, ok := api.PathID(c, "userId")
	if !ok {
		return
	}
	var req BookRequest
	if !api.BindJSON(c, &req) {
		return
	}

	sess, err := h.svc.Book(c.Request.Context(), userID, req.SessionID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Session booked successfully", sess)
}

// UnbookSession godoc
// @Summary      Cancel a session booking
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        userId     path      string  true  "User ID"
// @Param        sessionId  path      string  true  "Session ID"
// @Success      200        {object}  api.Response
// @Failure      404        {object}  api.ErrorResponse
// @Router       /api/users/{userId}/sessions/{sessionId} [delete]
func (h *Handler) UnbookSession(c *gin.Context) {
	userID, ok := api.PathID(c, "userId")
	if !ok {
		return
	}
	sessionID, ok := api.PathID(c, "sessionId")
	if !ok {
		return
	}

	if err := h.svc.Unbook(c.Request.Context(), userID, sessionID); err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Session unbooked successfully", nil)
}

// ListUserSessions godoc
// @Summary      List booked sessions
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  api.Response{data=[]session.Session}
// @Failure      404     {object}  api.ErrorResponse
// @Router       /api/users/{userId}/sessions [get]
func (h *Handler) ListUserSessions(c *gin.Context) {
	userID, ok := api.PathID(c, "userId")
	if !ok {
		return
	}

	sessions, err := h.svc.ListUserSessions(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	api.OK(c, "Booked sessions retrieved successfully", sessions)
}

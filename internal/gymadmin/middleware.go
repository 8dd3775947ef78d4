package gymadmin

import (
	"context"
	"net/http"

	"allyoucangym/internal/api"
	"allyoucangym/internal/auth"
	"allyoucangym/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type bodyIDs struct {
	GymID          string `json:"gymId"`
	SessionID      string `json:"sessionId"`
	AnnouncementID string `json:"announcementId"`
}

// readBodyIDs peeks at the JSON body without consuming it for the handler.
func readBodyIDs(c *gin.Context) bodyIDs {
	var ids bodyIDs
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return ids
	}
	_ = c.ShouldBindBodyWith(&ids, binding.JSON)
	return ids
}

// EnsureGymAdmin admits only principals with the gym admin role whose
// account still exists.
func EnsureGymAdmin(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := auth.GetUserID(c)
		if !ok {
			api.Fail(c, http.StatusUnauthorized, "Unauthorized access", nil)
			return
		}
		if role, _ := auth.GetRole(c); role != auth.RoleGymAdmin {
			api.Fail(c, http.StatusForbidden, "Forbidden: Not a gym admin", nil)
			return
		}

		exists, err := svc.IsAdmin(c.Request.Context(), adminID)
		if err != nil {
			api.RespondError(c, err)
			return
		}
		if !exists {
			api.Fail(c, http.StatusForbidden, "Forbidden: Not a gym admin", nil)
			return
		}
		c.Next()
	}
}

type ownershipCheck func(ctx context.Context, adminID, resourceID string) (bool, error)

func authorize(check ownershipCheck, field string, resolve func(*gin.Context) string, required bool, missingMsg, deniedMsg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := auth.GetUserID(c)
		if !ok {
			api.Fail(c, http.StatusUnauthorized, "Unauthorized access", nil)
			return
		}

		resourceID := resolve(c)
		if resourceID == "" {
			if required {
				api.Fail(c, http.StatusBadRequest, missingMsg, nil)
				return
			}
			c.Next()
			return
		}
		if _, err := uuid.Parse(resourceID); err != nil {
			api.Fail(c, http.StatusBadRequest, "Invalid "+field, "Invalid "+field)
			return
		}

		owns, err := check(c.Request.Context(), adminID, resourceID)
		if err != nil {
			logger.Error("ownership check failed", "adminId", adminID, "resourceId", resourceID, "error", err)
			api.RespondError(c, err)
			return
		}
		if !owns {
			api.Fail(c, http.StatusForbidden, deniedMsg, nil)
			return
		}
		c.Next()
	}
}

// fromParamOrBody reads the id from the named path parameter, falling back to
// the JSON body when param is empty.
func fromParamOrBody(param string, body func(bodyIDs) string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		if param != "" {
			if v := c.Param(param); v != "" {
				return v
			}
		}
		return body(readBodyIDs(c))
	}
}

func AuthorizeGym(svc Service, param string) gin.HandlerFunc {
	return authorize(svc.OwnsGym, "gymId",
		fromParamOrBody(param, func(b bodyIDs) string { return b.GymID }),
		true, "Gym id required", "Forbidden: you do not manage this gym")
}

// AuthorizeGymChange checks the gymId of the body only when one is present,
// so moving a session requires managing the destination gym.
func AuthorizeGymChange(svc Service) gin.HandlerFunc {
	return authorize(svc.OwnsGym, "gymId",
		fromParamOrBody("", func(b bodyIDs) string { return b.GymID }),
		false, "", "Forbidden: you do not manage this gym")
}

func AuthorizeSession(svc Service, param string) gin.HandlerFunc {
	return authorize(svc.OwnsSession, "sessionId",
		fromParamOrBody(param, func(b bodyIDs) string { return b.SessionID }),
		true, "Session id required", "Forbidden: you do not manage the gym for this session")
}

func AuthorizeAnnouncement(svc Service, param string) gin.HandlerFunc {
	return authorize(svc.OwnsAnnouncement, "announcementId",
		fromParamOrBody(param, func(b bodyIDs) string { return b.AnnouncementID }),
		true, "Announcement id required", "Forbidden: you do not manage the gym for this announcement")
}

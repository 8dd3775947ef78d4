package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ctxPrincipalID   = "principal_id"
	ctxPrincipalRole = "principal_role"
)

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorBody{Success: false, Message: msg, Error: msg})
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "No token provided")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			abort(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			abort(c, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := ValidateToken(tokenString, secret)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				abort(c, http.StatusUnauthorized, "Token expired")
			} else {
				abort(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		c.Set(ctxPrincipalID, claims.PrincipalID)
		c.Set(ctxPrincipalRole, claims.Role)

		c.Next()
	}
}

func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "User role not found")
			return
		}

		if role != requiredRole {
			abort(c, http.StatusForbidden, "Access denied")
			return
		}

		c.Next()
	}
}

// AuthorizeSelf only lets a principal act on the resource named by its own id
// in the given path parameter.
func AuthorizeSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetUserID(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		if c.Param(param) != id {
			abort(c, http.StatusForbidden, "Access denied")
			return
		}

		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxPrincipalID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func GetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxPrincipalRole)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

// SetPrincipal attaches an already authenticated principal to the context.
func SetPrincipal(c *gin.Context, id, role string) {
	c.Set(ctxPrincipalID, id)
	c.Set(ctxPrincipalRole, role)
}

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// BindJSON decodes the request body into req and validates its binding tags.
// The body is cached on the context so middleware may read it first.
// On failure it writes a 400 envelope and returns false.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			RespondWithValidationErrors(c, formatValidationErrors(verrs))
			return false
		}
		Fail(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}

func formatValidationErrors(verrs validator.ValidationErrors) []ValidationError {
	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   lowerFirst(fe.Field()),
			Tag:     fe.Tag(),
			Message: getErrorMessage(fe),
		})
	}
	return out
}

func getErrorMessage(err validator.FieldError) string {
	field := lowerFirst(err.Field())
	switch err.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + err.Param() + " characters"
	case "max":
		return field + " must be at most " + err.Param() + " characters"
	case "gte":
		return field + " must be greater than or equal to " + err.Param()
	case "lte":
		return field + " must be less than or equal to " + err.Param()
	case "gt":
		return field + " must be greater than " + err.Param()
	case "uuid":
		return field + " must be a valid id"
	default:
		return field + " is invalid"
	}
}

func RespondWithValidationErrors(c *gin.Context, errs []ValidationError) {
	msg := "Validation failed"
	if len(errs) > 0 {
		msg = errs[0].Message
	}
	Fail(c, http.StatusBadRequest, msg, errs)
}

// PathID reads a UUID path parameter. Malformed ids answer 400.
func PathID(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid "+name, "Invalid "+name)
		return "", false
	}
	return raw, true
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

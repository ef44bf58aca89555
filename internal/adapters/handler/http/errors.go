package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

var badRequestErrors = []error{
	domain.ErrHabitNameEmpty,
	domain.ErrHabitNameTooLong,
	domain.ErrHabitDescTooLong,
	domain.ErrHabitInvalidUserID,
	domain.ErrInvalidTarget,
	domain.ErrInvalidRule,
	domain.ErrMalformedDate,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
}

// handleError maps domain errors to status codes. Anything unknown is a 500
// and the cause is attached to the gin context for the request logger.
func handleError(c *gin.Context, err error) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "habit not found"})
	case errors.Is(err, domain.ErrCompletionExists), errors.Is(err, domain.ErrCompletionNotFound):
		c.JSON(http.StatusConflict, errorResponse{Error: "completion changed concurrently, retry"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, errorResponse{Error: "email already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	}
	return userID, ok
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. A missing
// value yields the zero Date, which the services read as today.
func parseDateQuery(c *gin.Context, name string) (domain.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return domain.Date{}, true
	}

	d, err := domain.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid " + name + " format, expected YYYY-MM-DD"})
		return domain.Date{}, false
	}
	return d, true
}

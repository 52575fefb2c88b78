package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blogapi/internal/app"
	"blogapi/internal/transport/http/middleware"
	"blogapi/internal/transport/http/response"
)

// writeServiceError maps service errors onto status codes. Anything
// unrecognised is a 500 whose cause is logged but not returned.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case app.IsValidation(err), errors.Is(err, app.ErrUsernameTaken):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, app.ErrNotFoundOrForbidden), errors.Is(err, app.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	default:
		response.Internal(c, err)
	}
}

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	return userID, ok && userID > 0
}

// parseIDParam reads a positive integer path parameter. On failure it has
// already written a 400.
func parseIDParam(c *gin.Context, name, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, message)
		return 0, false
	}
	return uint(id), true
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	MsgInvalidPayload = "invalid request payload"
	MsgInternal       = "internal server error"
)

type ErrorBody struct {
	Error string `json:"error"`
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

// Abort writes the error body and stops the handler chain.
func Abort(c *gin.Context, httpStatus int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorBody{Error: message})
}

// Internal records err on the context for the request logger and answers with
// a generic message.
func Internal(c *gin.Context, err error) {
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, MsgInternal)
}

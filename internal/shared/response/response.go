package response

import (
	"context"
	"errors"
	"net/http"

	"bookstore-catalog/internal/domains/catalog"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Response is the error envelope. Catalog entities are written bare.
type Response struct {
	Success bool   `json:"success"`
	Error   *Error `json:"error,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// HandleError maps a catalog service error to a response: notFound -> 404,
// validation -> 400, anything else -> 500.
func HandleError(c *gin.Context, err error, notFound error) {
	var verr *catalog.ValidationError
	switch {
	case errors.Is(err, notFound):
		NotFound(c, notFound.Error())
	case errors.As(err, &verr):
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", verr.Fields())
	case errors.Is(err, context.Canceled):
		// 499: client closed the request.
		c.Status(499)
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		InternalServerError(c, "internal server error")
	}
}

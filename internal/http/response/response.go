// Package response writes the JSON envelope shared by every endpoint.
// Client-facing messages come only from *domain.Error; anything else is
// logged and reported as a generic 500.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/you/foodauth/domain"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

const internalMessage = "Internal server error"

// Body is the success envelope.
type Body struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorDetail carries the client-safe failure message.
type ErrorDetail struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorBody is the failure envelope.
type ErrorBody struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Body{Success: true, Data: data, Message: message})
}

// Error writes the failure envelope for err.
func Error(c *gin.Context, err error) {
	status, body := render(c, err)
	c.JSON(status, body)
}

// Abort writes the failure envelope for err and stops the handler chain.
func Abort(c *gin.Context, err error) {
	status, body := render(c, err)
	c.AbortWithStatusJSON(status, body)
}

// Message aborts with a bare status and message, for failures that have no
// domain error such as throttling.
func Message(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: ErrorDetail{Message: msg}})
}

// Invalid reports a request body that failed binding or validation.
func Invalid(c *gin.Context, err error) {
	detail := ErrorDetail{Message: "Invalid request body"}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		detail.Message = "Validation failed"
		detail.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			detail.Fields[fe.Field()] = fe.Tag()
		}
	}
	c.JSON(http.StatusBadRequest, ErrorBody{Error: detail})
}

func render(c *gin.Context, err error) (int, ErrorBody) {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Status, ErrorBody{Error: ErrorDetail{Message: de.Message}}
	}
	log.Error().
		Str("request_id", c.GetString(RequestIDKey)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Err(err).
		Msg("unhandled error")
	return http.StatusInternalServerError, ErrorBody{Error: ErrorDetail{Message: internalMessage}}
}

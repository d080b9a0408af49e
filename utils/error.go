package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes for caller branching. Every error crossing a service boundary
// carries one of these.
type ErrorCode string

const (
	CodeNotFound   ErrorCode = "notFound"
	CodeForbidden  ErrorCode = "forbidden"
	CodeBadRequest ErrorCode = "badRequest"
	CodeConflict   ErrorCode = "conflict"
)

// ServiceError is the typed error returned by the core services.
type ServiceError struct {
	Code    ErrorCode
	Message string
	// ConflictingSessionID is set on booking conflicts so callers can surface
	// the colliding session.
	ConflictingSessionID string
}

func (e *ServiceError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func NewNotFoundError(msg string) error {
	return &ServiceError{Code: CodeNotFound, Message: msg}
}

func NewForbiddenError(msg string) error {
	return &ServiceError{Code: CodeForbidden, Message: msg}
}

func NewBadRequestError(msg string) error {
	return &ServiceError{Code: CodeBadRequest, Message: msg}
}

func NewConflictError(msg, conflictingSessionID string) error {
	return &ServiceError{Code: CodeConflict, Message: msg, ConflictingSessionID: conflictingSessionID}
}

// CodeOf extracts the error code, or "" for untyped errors.
func CodeOf(err error) ErrorCode {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// HTTPStatus maps a service error to its response status. Untyped errors are
// treated as internal.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// JSONServiceError renders a typed service error with its mapped status.
func JSONServiceError(c *gin.Context, err error) {
	var se *ServiceError
	if errors.As(err, &se) {
		resp := gin.H{"message": se.Message, "code": se.Code}
		if se.ConflictingSessionID != "" {
			resp["conflictingSessionId"] = se.ConflictingSessionID
		}
		c.JSON(HTTPStatus(err), resp)
		return
	}
	JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
}

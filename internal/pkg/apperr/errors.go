package apperr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeAuthRequired     = "AUTH_REQUIRED"
	CodeStorageError     = "STORAGE_ERROR"
	CodePersistenceError = "PERSISTENCE_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource does not exist within the caller's scope.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid. Validation failures never
	// cause partial writes: they are raised before any side effect.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrAuthRequired is returned when no owner identity could be resolved for the request.
	ErrAuthRequired = New(fiber.StatusUnauthorized, CodeAuthRequired, "authentication required")

	// ErrStorage is returned when the artifact store is unavailable or a write failed.
	ErrStorage = New(fiber.StatusBadGateway, CodeStorageError, "artifact store unavailable or write failed")

	// ErrPersistence is returned when the structured store is unavailable or a
	// write/delete failed.
	ErrPersistence = New(fiber.StatusInternalServerError, CodePersistenceError, "structured store unavailable or write failed")

	// ErrInternalError is returned when an unexpected internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]interface{}

type AppError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// Msg returns a copy of the error with a customized message. The receiver is
// taken by value so the package-level sentinels stay immutable.
func (e AppError) Msg(format string, parts ...interface{}) *AppError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e AppError) WithExtras(extras Extras) *AppError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations interface{}) *AppError {
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

// Is reports whether err carries the same ErrorCode as target. It makes the
// sentinels usable with errors.Is even after Msg/WithExtras copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.ErrorCode == t.ErrorCode
}

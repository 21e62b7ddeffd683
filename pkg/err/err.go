package errprocess

import (
	"errors"
	"fmt"

	"taskflow_realtime/pkg/logger"
)

// error categories shared by use cases and handlers; wrap with %w
var (
	// ErrMalformed request misses required fields
	ErrMalformed = errors.New("malformed request")
	// ErrNotFound referenced room/message/user does not exist
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized acting identity lacks permission
	ErrUnauthorized = errors.New("not authorized")
)

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// Malformed wrap ErrMalformed with detail
func Malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// NotFound wrap ErrNotFound with the missing entity name
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// Unauthorized wrap ErrUnauthorized with detail
func Unauthorized(detail string) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
}

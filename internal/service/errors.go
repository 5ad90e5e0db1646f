package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("business key already exists")
	ErrInvalidCredentials = errors.New("invalid user or password")
	ErrUserInactive       = errors.New("user account is inactive")
)

// BusinessError carries a machine-readable code for business-rule violations;
// the HTTP error handler converts it into a client-facing envelope.
type BusinessError struct {
	Code    string
	Message string
	Details any
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError flattens validator output into one BusinessError.
func NewValidationError(messages []string) *BusinessError {
	return &BusinessError{
		Code:    "VALIDATION_ERROR",
		Message: "request validation failed",
		Details: messages,
	}
}

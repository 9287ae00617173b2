package domain

import "errors"

var ErrInvalidArgument = errors.New("invalid argument")
var ErrProductNotFound = errors.New("product not found")
var ErrDuplicateProduct = errors.New("product id already exists")
var ErrForbidden = errors.New("access forbidden")
var ErrNoSession = errors.New("no active session")
var ErrInvalidToken = errors.New("invalid token")
var ErrConfirmationRequired = errors.New("confirmation missing or expired")
var ErrChatBusy = errors.New("a message is already being answered")
var ErrEmptyMessage = errors.New("message is empty")
var ErrChatProvider = errors.New("chat provider error")

// ValidationError carries a message meant to be shown to the user as-is,
// next to the form that produced it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

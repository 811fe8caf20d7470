package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRoomNotFound        = errors.New("room not found")
	ErrLoopNotFound        = errors.New("loop not found")
	ErrParticipantNotFound = errors.New("participant not found")
)

// ValidationError is a client-visible rejection of malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

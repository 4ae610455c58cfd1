package services

import "errors"

// Service-level errors. Handlers translate these into HTTP status codes;
// repositories never leak their own error types past this layer.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrChannelNotFound     = errors.New("channel not found")
	ErrEmailExists         = errors.New("email already registered")
	ErrInvalidCredential   = errors.New("invalid email or password")
	ErrNotStudent          = errors.New("operation requires a student account")
	ErrNotProfessor        = errors.New("operation requires a professor account")
	ErrNotChannelOwner     = errors.New("channel belongs to another professor")
	ErrInvalidParticipant  = errors.New("invalid conversation participant")
	ErrRecomputeInProgress = errors.New("rating recompute already running")
)

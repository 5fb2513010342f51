package core

import "errors"

// Error codes surfaced to clients.
const (
	ErrCodeAlreadyJoined = "already_joined"
	ErrCodeNotJoined     = "not_joined"
	ErrCodeBadRequest    = "bad_request"
)

var (
	ErrAlreadyJoined = errors.New("already joined")
	ErrNotJoined     = errors.New("not joined")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

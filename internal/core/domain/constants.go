package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidModule    = errors.New("invalid module record")
	ErrModuleNotFound   = errors.New("module not found")
	ErrUsage            = errors.New("missing module name")
	ErrUnknownModule    = errors.New("unknown module")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMissingArguments = errors.New("missing required arguments")

	ErrMissingChannel     = errors.New("channel_id is required")
	ErrEphemeralNeedsUser = errors.New("user_id is required for ephemeral messages")
	ErrMethodNotAllowed   = errors.New("platform method not allowed")
)

// PlatformError is a failed chat-platform API call. It carries the status
// code and reason to propagate to the hub's own HTTP caller, the one place
// where an upstream failure surfaces as a hard error.
type PlatformError struct {
	StatusCode int
	Reason     string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform request failed with status %d: %s", e.StatusCode, e.Reason)
}

// ParseError is a user-input problem detected while parsing slash-command
// text. UserMessage is what gets sent back as an ephemeral message; the
// wrapped sentinel identifies the failure class.
type ParseError struct {
	Kind        error
	UserMessage string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.UserMessage)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// ModuleResponseError is a non-2xx reply from a module endpoint. Connection
// level failures stay plain errors; this type only marks that the module was
// reached and answered.
type ModuleResponseError struct {
	StatusCode int
}

func (e *ModuleResponseError) Error() string {
	return fmt.Sprintf("module responded with status %d", e.StatusCode)
}

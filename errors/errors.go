package errors

import (
	stderrors "errors"
	"fmt"
)

// Reducer-level validation failures. Each one maps to a stable wire code so
// operator clients can branch on the code rather than the message.
var (
	ErrUnknownPack          = fmt.Errorf("unknown pack")
	ErrInvalidRevealStep    = fmt.Errorf("invalid reveal step")
	ErrInvalidTimerDuration = fmt.Errorf("invalid timer duration")
	ErrEmptyEffect          = fmt.Errorf("empty fx type")
)

// Authorization failures. Neither of these ever mutates session state.
var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrNotAuthorized      = fmt.Errorf("action submitted without authorization")
	ErrRoleNotOperator    = fmt.Errorf("connection role cannot authenticate")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
)

// Collaborator-boundary failures.
var (
	ErrPackNotFound   = fmt.Errorf("pack not found")
	ErrSessionUnknown = fmt.Errorf("session unknown")
)

// ErrWorkerPanic is reported by the supervisor when a worker goroutine
// recovers from a panic.
var ErrWorkerPanic = fmt.Errorf("worker panic")

// Code maps a domain error to its stable wire code. Unknown errors collapse
// into "internal" so internals never leak to clients verbatim.
func Code(err error) string {
	switch {
	case stderrors.Is(err, ErrUnknownPack):
		return "unknown_pack"
	case stderrors.Is(err, ErrInvalidRevealStep):
		return "invalid_reveal_step"
	case stderrors.Is(err, ErrInvalidTimerDuration):
		return "invalid_timer_duration"
	case stderrors.Is(err, ErrEmptyEffect):
		return "empty_fx_type"
	case stderrors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case stderrors.Is(err, ErrNotAuthorized):
		return "not_authorized"
	case stderrors.Is(err, ErrRoleNotOperator):
		return "role_not_operator"
	case stderrors.Is(err, ErrTokenGeneration):
		return "token_generation_failed"
	case stderrors.Is(err, ErrPackNotFound):
		return "pack_not_found"
	case stderrors.Is(err, ErrSessionUnknown):
		return "session_unknown"
	default:
		return "internal"
	}
}

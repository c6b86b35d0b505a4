package app

import (
	"errors"
	"fmt"
)

// Per-record failures. Both are recovered locally: the record or section
// is dropped and the run continues.
var (
	ErrMalformedActivity   = errors.New("activity dates not found")
	ErrUnknownActivityType = errors.New("activity type not found")
)

// ConfigError is a fatal configuration problem, raised before any
// extraction starts.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Reason
}

// AuthError is a fatal login/session failure, raised before any
// extraction starts.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RetrievalError wraps a failure to load one classroom page. It is
// recovered at classroom granularity: that classroom is simply absent
// from the result.
type RetrievalError struct {
	ClassroomID string
	Err         error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("classroom %s: retrieval failed: %v", e.ClassroomID, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// Skip records one dropped record or section: which classroom, which
// activity (empty for section-level skips) and why.
type Skip struct {
	ClassroomID string
	ActivityID  string
	Err         error
}

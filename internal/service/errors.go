package service

import (
	"errors"
	"fmt"
)

// Authorization flow errors
var (
	ErrNotConfigured  = errors.New("google oauth client is not configured")
	ErrStateMismatch  = errors.New("authorization state does not match")
	ErrExchangeFailed = errors.New("authorization code exchange failed")
)

// Credential errors. Both are terminal until the user repeats the
// authorization flow; callers must not fall back to an unauthenticated send.
var (
	ErrNotConnected            = errors.New("gmail is not connected")
	ErrReauthorizationRequired = errors.New("gmail authorization has expired, reconnection required")
)

// ValidationError reports a missing or malformed caller input
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// DispatchKind classifies a failed send
type DispatchKind string

const (
	// DispatchProviderRejected means Gmail accepted the request but refused
	// the message (quota, malformed address, revoked grant)
	DispatchProviderRejected DispatchKind = "provider_rejected"
	// DispatchUnreachable means the request never got a provider verdict
	DispatchUnreachable DispatchKind = "unreachable"
)

// DispatchError reports a failed send. No retry is performed internally; a
// send that failed here is a single terminal failure for the caller.
type DispatchError struct {
	Kind   DispatchKind
	Detail string
	Err    error
}

func (e *DispatchError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("send failed (%s): %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("send failed (%s)", e.Kind)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

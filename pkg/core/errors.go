package core

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors.
var (
	ErrTransport  = errors.New("transport fault")
	ErrRejected   = errors.New("operation rejected")
	ErrValidation = errors.New("validation failed")
	ErrMissingID  = errors.New("item ID cannot be empty")
	ErrNotStarted = errors.New("controller is not running")
)

// TransportFault reports a request that never produced a normal response envelope:
// network failure, non-2xx status or an undecodable body.
type TransportFault struct {
	Op     string
	Status int // zero when no HTTP response was received
	Err    error
}

func (e *TransportFault) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportFault) Unwrap() error { return e.Err }

func (e *TransportFault) Is(target error) bool { return target == ErrTransport }

// RejectedOperation reports a normal response carrying success=false.
type RejectedOperation struct {
	Op      string
	Message string
}

func (e *RejectedOperation) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Op, e.Message)
}

func (e *RejectedOperation) Is(target error) bool { return target == ErrRejected }

// ValidationGap reports required form fields left empty. It is raised before any request is made.
type ValidationGap struct {
	Kind    string
	Missing []string
}

func (e *ValidationGap) Error() string {
	return fmt.Sprintf("%s: missing required fields: %s", e.Kind, strings.Join(e.Missing, ", "))
}

func (e *ValidationGap) Is(target error) bool { return target == ErrValidation }

package seeding

import (
	"errors"
	"fmt"
)

// ErrWaveNotFound indicates a wave id that does not belong to the event.
var ErrWaveNotFound = errors.New("wave not found")

// Error represents a failure detected by the sequencing engine.
//
// Engine errors include:
//   - Unknown policy: a wave names an ordering policy the engine does not know
//   - Conflict: a participant resolves into two waves, or the store rejects a duplicate
//   - Relocation gap: a move could not find the adjacent entry
//   - Store unavailable: the schedule store failed to read or write
//
// Error includes structured fields for diagnostics and recovery.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// EventID identifies the affected event.
	EventID int64

	// WaveID identifies the wave (for policy and conflict errors).
	WaveID int64

	// Details contains additional context.
	Details map[string]string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodePolicyUnknown indicates an unrecognized ordering policy.
	ErrCodePolicyUnknown ErrorCode = "POLICY_UNKNOWN"

	// ErrCodeConflict indicates a duplicate participant or sequence.
	ErrCodeConflict ErrorCode = "CONFLICT"

	// ErrCodeRelocationGap indicates a move could not find its neighbour.
	ErrCodeRelocationGap ErrorCode = "RELOCATION_GAP"

	// ErrCodeStoreUnavailable indicates a schedule store I/O failure.
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.EventID != 0 && e.WaveID != 0 {
		msg = fmt.Sprintf("%s (event=%d, wave=%d)", msg, e.EventID, e.WaveID)
	} else if e.EventID != 0 {
		msg = fmt.Sprintf("%s (event=%d)", msg, e.EventID)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func hasCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// IsPolicyError returns true if the error is an unknown policy error.
func IsPolicyError(err error) bool {
	return hasCode(err, ErrCodePolicyUnknown)
}

// IsConflictError returns true if the error is a uniqueness conflict.
func IsConflictError(err error) bool {
	return hasCode(err, ErrCodeConflict)
}

// IsStoreUnavailable returns true if the error is a store I/O failure.
// Callers may retry these with backoff; the engine never does.
func IsStoreUnavailable(err error) bool {
	return hasCode(err, ErrCodeStoreUnavailable)
}

// NewPolicyError creates an Error for an unrecognized policy.
func NewPolicyError(waveID int64, policy int) *Error {
	return &Error{
		Code:    ErrCodePolicyUnknown,
		Message: fmt.Sprintf("unrecognized sequence policy %d", policy),
		WaveID:  waveID,
		Details: map[string]string{
			"policy": fmt.Sprintf("%d", policy),
		},
	}
}

// NewConflictError creates an Error for a participant scheduled twice.
func NewConflictError(eventID, participantID int64, err error) *Error {
	return &Error{
		Code:    ErrCodeConflict,
		Message: fmt.Sprintf("participant %d would be scheduled more than once", participantID),
		EventID: eventID,
		Details: map[string]string{
			"participant_id": fmt.Sprintf("%d", participantID),
		},
		Err: err,
	}
}

// NewStoreError creates an Error for a failed store operation.
func NewStoreError(eventID int64, op string, err error) *Error {
	return &Error{
		Code:    ErrCodeStoreUnavailable,
		Message: op + " failed",
		EventID: eventID,
		Err:     err,
	}
}

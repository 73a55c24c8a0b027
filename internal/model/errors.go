package model

import "errors"

// Sentinel errors returned (wrapped) by schedule store implementations.
var (
	// ErrNotFound indicates no entry matched the lookup.
	ErrNotFound = errors.New("entry not found")

	// ErrAmbiguous indicates more than one entry matched a lookup that must be unique.
	ErrAmbiguous = errors.New("entry lookup matched more than one row")

	// ErrConflict indicates a uniqueness constraint violation on
	// (event, participant) or (event, start_sequence).
	ErrConflict = errors.New("schedule uniqueness conflict")
)

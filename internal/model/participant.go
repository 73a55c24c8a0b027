package model

import (
	"slices"
	"time"
)

// Participant is a registered rider as seen by the sequencing engine.
// The engine never mutates participants; it only reads the fields below.
type Participant struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Bib          int       `json:"bib,omitempty"` // 0 = no bib
	Category     string    `json:"category"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	EstSpeed     float64   `json:"est_speed"` // km/h
	SeedEarly    bool      `json:"seed_early,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
	Options      []int     `json:"options,omitempty"`
}

// HasOption reports whether the participant opted into the optional event id.
func (p Participant) HasOption(optionID int) bool {
	return slices.Contains(p.Options, optionID)
}

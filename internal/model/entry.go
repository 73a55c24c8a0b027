package model

import "time"

// Entry is the persisted schedule record of one participant in one event.
//
// StartSequence values of an event's entries form the dense set {1..N}.
// FinishTime and the adjustment fields are written by downstream timing
// and are carried through untouched.
type Entry struct {
	EventID        int64          `json:"event_id"`
	ParticipantID  int64          `json:"participant_id"`
	StartSequence  int            `json:"start_sequence"`
	StartTime      *time.Duration `json:"start_time,omitempty"`
	FinishTime     *time.Duration `json:"finish_time,omitempty"`
	AdjustmentTime *time.Duration `json:"adjustment_time,omitempty"`
	AdjustmentNote string         `json:"adjustment_note,omitempty"`
}

// ScheduledParticipant is a participant joined with its resolved schedule.
type ScheduledParticipant struct {
	Participant
	WaveID    int64          `json:"wave_id"`
	StartTime *time.Duration `json:"start_time,omitempty"`
	ClockTime *time.Time     `json:"clock_time,omitempty"`
	GapChange bool           `json:"gap_change,omitempty"`

	// FinishTime and Speed are set once a timing system has written a finish.
	FinishTime *time.Duration `json:"finish_time,omitempty"`
	Speed      float64        `json:"speed,omitempty"`
}

// Seeding is the audit record of one full regeneration.
type Seeding struct {
	GenerationID string    `json:"generation_id"`
	EventID      int64     `json:"event_id"`
	Entries      int       `json:"entries"`
	Fingerprint  string    `json:"fingerprint"`
	CreatedAt    time.Time `json:"created_at"`
}

// DurationPtr returns a pointer to d.
func DurationPtr(d time.Duration) *time.Duration {
	return &d
}

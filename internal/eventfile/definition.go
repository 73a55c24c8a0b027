package eventfile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/startlist/internal/model"
)

// Definition is the on-disk form of one event. The same struct decodes from
// YAML (yaml tags) and CUE (json tags).
type Definition struct {
	Event        EventDef         `yaml:"event" json:"event"`
	Waves        []WaveDef        `yaml:"waves" json:"waves"`
	Participants []ParticipantDef `yaml:"participants" json:"participants"`
}

// EventDef describes the event itself.
type EventDef struct {
	ID   int64  `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`

	// Start is the RFC 3339 anchor every start offset is relative to.
	Start string `yaml:"start" json:"start"`

	// Seeded switches the seeded start list on. Defaults to true.
	Seeded *bool `yaml:"seeded,omitempty" json:"seeded,omitempty"`

	// OptionID restricts participation to registrations holding this option.
	OptionID int `yaml:"option_id,omitempty" json:"option_id,omitempty"`
}

// WaveDef describes one start wave. Gap durations use time.ParseDuration
// syntax; omitted values take the defaults of model.DefaultGapRules.
type WaveDef struct {
	ID         int64    `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Sequence   int      `yaml:"sequence" json:"sequence"`
	Policy     string   `yaml:"policy,omitempty" json:"policy,omitempty"`
	Distance   float64  `yaml:"distance,omitempty" json:"distance,omitempty"`
	Laps       int      `yaml:"laps,omitempty" json:"laps,omitempty"`
	GapBefore  string   `yaml:"gap_before,omitempty" json:"gap_before,omitempty"`
	RegularGap string   `yaml:"regular_gap,omitempty" json:"regular_gap,omitempty"`
	FastGap    string   `yaml:"fast_gap,omitempty" json:"fast_gap,omitempty"`
	NumFastest *int     `yaml:"num_fastest,omitempty" json:"num_fastest,omitempty"`
	Categories []string `yaml:"categories" json:"categories"`
}

// ParticipantDef describes one registered participant.
type ParticipantDef struct {
	ID       int64  `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Bib      int    `yaml:"bib,omitempty" json:"bib,omitempty"`
	Category string `yaml:"category" json:"category"`

	// DateOfBirth is YYYY-MM-DD.
	DateOfBirth string  `yaml:"date_of_birth" json:"date_of_birth"`
	EstSpeed    float64 `yaml:"est_speed,omitempty" json:"est_speed,omitempty"`
	SeedEarly   bool    `yaml:"seed_early,omitempty" json:"seed_early,omitempty"`

	// RegisteredAt is RFC 3339; empty means unknown.
	RegisteredAt string `yaml:"registered_at,omitempty" json:"registered_at,omitempty"`
	Options      []int  `yaml:"options,omitempty" json:"options,omitempty"`
}

// Model converts the definition into domain types.
// Every problem found is reported, joined into one error.
func (d *Definition) Model() (model.Event, []model.Participant, error) {
	var errs []error

	event := model.Event{
		ID:              d.Event.ID,
		Name:            d.Event.Name,
		SeededStartlist: d.Event.Seeded == nil || *d.Event.Seeded,
		OptionID:        d.Event.OptionID,
	}
	if event.ID <= 0 {
		errs = append(errs, fmt.Errorf("event.id: must be positive"))
	}
	start, err := time.Parse(time.RFC3339, d.Event.Start)
	if err != nil {
		errs = append(errs, fmt.Errorf("event.start: %w", err))
	}
	event.Start = start

	waveIDs := make(map[int64]bool, len(d.Waves))
	for i, wd := range d.Waves {
		w, err := wd.model()
		if err != nil {
			errs = append(errs, fmt.Errorf("waves[%d]: %w", i, err))
			continue
		}
		if waveIDs[w.ID] {
			errs = append(errs, fmt.Errorf("waves[%d]: duplicate wave id %d", i, w.ID))
			continue
		}
		waveIDs[w.ID] = true
		event.Waves = append(event.Waves, w)
	}

	participants := make([]model.Participant, 0, len(d.Participants))
	seen := make(map[int64]bool, len(d.Participants))
	for i, pd := range d.Participants {
		p, err := pd.model()
		if err != nil {
			errs = append(errs, fmt.Errorf("participants[%d]: %w", i, err))
			continue
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("participants[%d]: duplicate participant id %d", i, p.ID))
			continue
		}
		seen[p.ID] = true
		participants = append(participants, p)
	}

	if err := errors.Join(errs...); err != nil {
		return model.Event{}, nil, err
	}
	return event, participants, nil
}

func (wd WaveDef) model() (model.Wave, error) {
	if wd.ID <= 0 {
		return model.Wave{}, fmt.Errorf("id: must be positive")
	}

	policy := model.PolicySpeedIncreasing
	if wd.Policy != "" {
		p, err := model.ParsePolicy(wd.Policy)
		if err != nil {
			return model.Wave{}, fmt.Errorf("policy: %w", err)
		}
		policy = p
	}

	gaps := model.DefaultGapRules()
	for _, f := range []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"gap_before", wd.GapBefore, &gaps.GapBeforeWave},
		{"regular_gap", wd.RegularGap, &gaps.RegularGap},
		{"fast_gap", wd.FastGap, &gaps.FastGap},
	} {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return model.Wave{}, fmt.Errorf("%s: %w", f.name, err)
		}
		if d < 0 {
			return model.Wave{}, fmt.Errorf("%s: must not be negative", f.name)
		}
		*f.dst = d
	}
	if wd.NumFastest != nil {
		if *wd.NumFastest < 0 {
			return model.Wave{}, fmt.Errorf("num_fastest: must not be negative")
		}
		gaps.NumFastest = *wd.NumFastest
	}

	laps := wd.Laps
	if laps == 0 {
		laps = 1
	}

	return model.Wave{
		ID:         wd.ID,
		Name:       wd.Name,
		Sequence:   wd.Sequence,
		Policy:     policy,
		Distance:   wd.Distance,
		Laps:       laps,
		Gaps:       gaps,
		Categories: wd.Categories,
	}, nil
}

func (pd ParticipantDef) model() (model.Participant, error) {
	if pd.ID <= 0 {
		return model.Participant{}, fmt.Errorf("id: must be positive")
	}
	if strings.TrimSpace(pd.Category) == "" {
		return model.Participant{}, fmt.Errorf("category: required")
	}
	if pd.Bib < 0 {
		return model.Participant{}, fmt.Errorf("bib: must not be negative")
	}
	dob, err := time.Parse(time.DateOnly, pd.DateOfBirth)
	if err != nil {
		return model.Participant{}, fmt.Errorf("date_of_birth: %w", err)
	}

	var registered time.Time
	if pd.RegisteredAt != "" {
		registered, err = time.Parse(time.RFC3339, pd.RegisteredAt)
		if err != nil {
			return model.Participant{}, fmt.Errorf("registered_at: %w", err)
		}
	}

	return model.Participant{
		ID:           pd.ID,
		Name:         pd.Name,
		Bib:          pd.Bib,
		Category:     pd.Category,
		DateOfBirth:  dob,
		EstSpeed:     pd.EstSpeed,
		SeedEarly:    pd.SeedEarly,
		RegisteredAt: registered,
		Options:      pd.Options,
	}, nil
}

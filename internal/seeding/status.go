package seeding

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/roach88/startlist/internal/model"
)

// unscheduled sorts participants without a start time after every scheduled one.
const unscheduled = time.Duration(1<<63 - 1)

// scheduleEntries loads the entry of every scheduled participant of event.
// Returns an empty map when seeding is switched off for the event.
func (e *Engine) scheduleEntries(ctx context.Context, event model.Event) (map[int64]model.Entry, error) {
	byParticipant := make(map[int64]model.Entry)
	if !event.SeededStartlist {
		return byParticipant, nil
	}
	entries, err := e.store.ListEntries(ctx, event.ID)
	if err != nil {
		return nil, NewStoreError(event.ID, "list entries", err)
	}
	for _, en := range entries {
		byParticipant[en.ParticipantID] = en
	}
	return byParticipant, nil
}

// scheduled joins every distinct participant of the given waves with its
// entry: start time, clock time and, once timed, finish time and speed.
func scheduled(event model.Event, groups []WaveParticipants, entries map[int64]model.Entry) []model.ScheduledParticipant {
	seen := make(map[int64]bool)
	var out []model.ScheduledParticipant
	for _, g := range groups {
		for _, p := range g.Participants {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			en := entries[p.ID]
			sp := model.ScheduledParticipant{
				Participant: p,
				WaveID:      g.Wave.ID,
				StartTime:   en.StartTime,
				ClockTime:   event.ClockTime(en.StartTime),
				FinishTime:  en.FinishTime,
			}
			if speed, ok := WaveSpeed(g.Wave, en); ok {
				sp.Speed = speed
			}
			out = append(out, sp)
		}
	}
	if out == nil {
		out = []model.ScheduledParticipant{}
	}
	return out
}

// sortBySchedule orders by start time (unscheduled last), then bib, then ID.
func sortBySchedule(list []model.ScheduledParticipant) {
	slices.SortStableFunc(list, func(a, b model.ScheduledParticipant) int {
		ta, tb := unscheduled, unscheduled
		if a.StartTime != nil {
			ta = *a.StartTime
		}
		if b.StartTime != nil {
			tb = *b.StartTime
		}
		if ta != tb {
			if ta < tb {
				return -1
			}
			return 1
		}
		if a.Bib != b.Bib {
			return a.Bib - b.Bib
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}

// markGapChanges flags each participant whose gap to its predecessor differs
// from the previous gap. The first two entries are never flagged; pairs with
// an unscheduled side are skipped.
func markGapChanges(list []model.ScheduledParticipant) {
	var last time.Duration
	for i := 1; i < len(list); i++ {
		prev, cur := list[i-1].StartTime, list[i].StartTime
		if prev == nil || cur == nil {
			continue
		}
		gap := *cur - *prev
		if gap != last {
			if i > 1 {
				list[i].GapChange = true
			}
			last = gap
		}
	}
}

// ParticipantsWithSchedule returns every participant of event ordered by
// start time (unscheduled last, ties by bib), each with its start time,
// clock time and gap-change marker. The marker is for display grouping only.
func (e *Engine) ParticipantsWithSchedule(ctx context.Context, event model.Event) ([]model.ScheduledParticipant, error) {
	groups, err := e.resolveWaves(ctx, event)
	if err != nil {
		return nil, err
	}
	entries, err := e.scheduleEntries(ctx, event)
	if err != nil {
		return nil, err
	}

	list := scheduled(event, groups, entries)
	sortBySchedule(list)
	markGapChanges(list)
	return list, nil
}

// UnseededCount returns how many participants of event have no entry.
// Always 0 when seeding is switched off for the event.
func (e *Engine) UnseededCount(ctx context.Context, event model.Event) (int, error) {
	if !event.SeededStartlist {
		return 0, nil
	}
	list, err := e.ParticipantsWithSchedule(ctx, event)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range list {
		if p.StartTime == nil {
			n++
		}
	}
	return n, nil
}

// HasUnseeded reports whether any participant of event lacks an entry.
// Always false when seeding is switched off for the event.
func (e *Engine) HasUnseeded(ctx context.Context, event model.Event) (bool, error) {
	if !event.SeededStartlist {
		return false, nil
	}
	groups, err := e.resolveWaves(ctx, event)
	if err != nil {
		return false, err
	}
	entries, err := e.store.ListEntries(ctx, event.ID)
	if err != nil {
		return false, NewStoreError(event.ID, "list entries", err)
	}

	hasEntry := make(map[int64]bool, len(entries))
	for _, en := range entries {
		hasEntry[en.ParticipantID] = true
	}
	for _, g := range groups {
		for _, p := range g.Participants {
			if !hasEntry[p.ID] {
				return true, nil
			}
		}
	}
	return false, nil
}

// WaveSchedule returns the participants of one wave with their schedule.
// With seeding switched off they are ordered by bib and carry no times.
func (e *Engine) WaveSchedule(ctx context.Context, event model.Event, waveID int64) ([]model.ScheduledParticipant, error) {
	wave, ok := event.Wave(waveID)
	if !ok {
		return nil, fmt.Errorf("wave %d in event %d: %w", waveID, event.ID, ErrWaveNotFound)
	}
	ps, err := e.resolver.WaveParticipants(ctx, event, wave)
	if err != nil {
		return nil, err
	}
	entries, err := e.scheduleEntries(ctx, event)
	if err != nil {
		return nil, err
	}

	list := scheduled(event, []WaveParticipants{{Wave: wave, Participants: ps}}, entries)
	if !event.SeededStartlist {
		slices.SortStableFunc(list, func(a, b model.ScheduledParticipant) int {
			return a.Bib - b.Bib
		})
		return list, nil
	}
	sortBySchedule(list)
	markGapChanges(list)
	return list, nil
}

// UnseededParticipants returns the participants of one wave without an entry.
// Empty when seeding is switched off for the event.
func (e *Engine) UnseededParticipants(ctx context.Context, event model.Event, waveID int64) ([]model.Participant, error) {
	out := []model.Participant{}
	if !event.SeededStartlist {
		return out, nil
	}
	list, err := e.WaveSchedule(ctx, event, waveID)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.StartTime == nil {
			out = append(out, p.Participant)
		}
	}
	return out, nil
}

// StartTime returns the start offset of one participant, or nil when the
// participant has no entry.
func (e *Engine) StartTime(ctx context.Context, event model.Event, participantID int64) (*time.Duration, error) {
	en, err := e.store.GetEntry(ctx, event.ID, participantID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, NewStoreError(event.ID, "get entry", err)
	}
	return en.StartTime, nil
}

// LateRegistrations returns the participants of one wave, or of every wave
// when waveID is 0, that registered after registration closed, closure
// before the event start. Participants the event does not select are never
// reported.
func (e *Engine) LateRegistrations(ctx context.Context, event model.Event, waveID int64, closure time.Duration) ([]model.Participant, error) {
	var groups []WaveParticipants
	if waveID != 0 {
		wave, ok := event.Wave(waveID)
		if !ok {
			return nil, fmt.Errorf("wave %d in event %d: %w", waveID, event.ID, ErrWaveNotFound)
		}
		ps, err := e.resolver.WaveParticipants(ctx, event, wave)
		if err != nil {
			return nil, err
		}
		groups = []WaveParticipants{{Wave: wave, Participants: ps}}
	} else {
		var err error
		if groups, err = e.resolveWaves(ctx, event); err != nil {
			return nil, err
		}
	}

	seen := make(map[int64]bool)
	var members []model.Participant
	for _, g := range groups {
		for _, p := range g.Participants {
			if !seen[p.ID] {
				seen[p.ID] = true
				members = append(members, p)
			}
		}
	}
	return registeredAfter(members, event.Start.Add(-closure)), nil
}

// registeredAfter keeps the participants registered strictly after deadline.
// Unknown registration times never count as late.
func registeredAfter(ps []model.Participant, deadline time.Time) []model.Participant {
	out := []model.Participant{}
	for _, p := range ps {
		if p.RegisteredAt.After(deadline) {
			out = append(out, p)
		}
	}
	return out
}

// WaveSpeed returns the average speed in distance units per hour of an
// entry over the wave's total distance. ok is false when the speed is unknown.
func WaveSpeed(wave model.Wave, entry model.Entry) (speed float64, ok bool) {
	distance := wave.TotalDistance()
	if entry.StartTime == nil || entry.FinishTime == nil || distance <= 0 {
		return 0, false
	}
	elapsed := *entry.FinishTime - *entry.StartTime
	if elapsed <= 0 {
		return 0, false
	}
	return distance / elapsed.Seconds() * 3600, true
}

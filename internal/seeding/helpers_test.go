package seeding

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/startlist/internal/model"
	"github.com/roach88/startlist/internal/store"
	"github.com/roach88/startlist/internal/testutil"
)

// refDate is the reference "today" used by engine tests.
var refDate = time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)

// scenarioGaps is the gap configuration of the three-rider scenario:
// 300s before the wave, 60s regular, 120s for the last rider.
var scenarioGaps = model.GapRules{
	GapBeforeWave: 300 * time.Second,
	RegularGap:    60 * time.Second,
	FastGap:       120 * time.Second,
	NumFastest:    1,
}

// scenarioRiders returns A(bib 1, 30 km/h), B(bib 2, 35 km/h) and the
// seed-early C(bib 3, 20 km/h) with IDs 1, 2 and 3.
func scenarioRiders() []model.Participant {
	return []model.Participant{
		testutil.Participant(1, testutil.Bib(1), testutil.Speed(30)),
		testutil.Participant(2, testutil.Bib(2), testutil.Speed(35)),
		testutil.Participant(3, testutil.Bib(3), testutil.Speed(20), testutil.SeedEarly()),
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestEngine(t *testing.T, st ScheduleStore, r ParticipantResolver, opts ...Option) *Engine {
	t.Helper()
	base := []Option{
		WithDateSource(testutil.NewTestDate(refDate)),
		WithGenerationIDs(testutil.NewFixedGenerationID("")),
		WithNow(func() time.Time { return time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC) }),
	}
	return New(st, r, append(base, opts...)...)
}

// seedSchedule writes entries directly, bypassing allocation.
func seedSchedule(t *testing.T, st *store.Store, eventID int64, entries []model.Entry) {
	t.Helper()
	require.NoError(t, st.ReplaceEntries(context.Background(), eventID, entries, model.Seeding{}))
}

// sequenceToParticipant maps start sequence to participant ID.
func sequenceToParticipant(t *testing.T, st *store.Store, eventID int64) map[int]int64 {
	t.Helper()
	entries, err := st.ListEntries(context.Background(), eventID)
	require.NoError(t, err)
	out := make(map[int]int64, len(entries))
	for _, e := range entries {
		out[e.StartSequence] = e.ParticipantID
	}
	return out
}

func participantIDs(ps []model.Participant) []int64 {
	out := make([]int64, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

// fakeStore is an in-memory ScheduleStore whose methods can be made to fail.
type fakeStore struct {
	mu         sync.Mutex
	entries    map[int64][]model.Entry
	replaceErr error
	listErr    error
	relocErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[int64][]model.Entry)}
}

func (f *fakeStore) ReplaceEntries(_ context.Context, eventID int64, entries []model.Entry, _ model.Seeding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.entries[eventID] = append([]model.Entry{}, entries...)
	return nil
}

func (f *fakeStore) ListEntries(_ context.Context, eventID int64) ([]model.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Entry{}, f.entries[eventID]...), nil
}

func (f *fakeStore) GetEntry(_ context.Context, eventID, participantID int64) (model.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return model.Entry{}, f.listErr
	}
	for _, e := range f.entries[eventID] {
		if e.ParticipantID == participantID {
			return e, nil
		}
	}
	return model.Entry{}, model.ErrNotFound
}

func (f *fakeStore) Relocate(ctx context.Context, eventID int64, fn func(tx model.ScheduleTx) error) error {
	if f.relocErr != nil {
		return f.relocErr
	}
	f.mu.Lock()
	tx := &fakeTx{entries: append([]model.Entry{}, f.entries[eventID]...)}
	f.mu.Unlock()

	if err := fn(tx); err != nil {
		return err
	}

	f.mu.Lock()
	f.entries[eventID] = tx.entries
	f.mu.Unlock()
	return nil
}

// fakeTx is a model.ScheduleTx over a slice. Unlike the SQLite store it
// tolerates duplicate sequences, so ambiguous neighbours can be tested.
type fakeTx struct {
	entries []model.Entry
	swaps   int
}

func (f *fakeTx) Entry(_ context.Context, participantID int64) (model.Entry, error) {
	for _, e := range f.entries {
		if e.ParticipantID == participantID {
			return e, nil
		}
	}
	return model.Entry{}, model.ErrNotFound
}

func (f *fakeTx) EntryAt(_ context.Context, sequence int) (model.Entry, error) {
	var found []model.Entry
	for _, e := range f.entries {
		if e.StartSequence == sequence {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return model.Entry{}, model.ErrNotFound
	case 1:
		return found[0], nil
	default:
		return model.Entry{}, model.ErrAmbiguous
	}
}

func (f *fakeTx) Swap(_ context.Context, a, b model.Entry) (model.Entry, model.Entry, error) {
	a.StartSequence, b.StartSequence = b.StartSequence, a.StartSequence
	a.StartTime, b.StartTime = b.StartTime, a.StartTime
	for i := range f.entries {
		switch f.entries[i].ParticipantID {
		case a.ParticipantID:
			f.entries[i] = a
		case b.ParticipantID:
			f.entries[i] = b
		}
	}
	f.swaps++
	return a, b, nil
}

// recordingRecorder captures metric calls.
type recordingRecorder struct {
	mu          sync.Mutex
	seedings    []int
	seedErrs    []error
	relocations []int
}

func (r *recordingRecorder) RecordSeeding(_ context.Context, _ int64, entries int, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seedings = append(r.seedings, entries)
	r.seedErrs = append(r.seedErrs, err)
}

func (r *recordingRecorder) RecordRelocation(_ context.Context, _ int64, steps int, _ bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.relocations = append(r.relocations, steps)
}

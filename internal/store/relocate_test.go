package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/startlist/internal/model"
)

func TestRelocate_SwapExchangesSequenceAndTime(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	entries := createTestEntries(1, 3)
	require.NoError(t, s.ReplaceEntries(ctx, 1, entries, model.Seeding{}))

	err := s.Relocate(ctx, 1, func(tx model.ScheduleTx) error {
		a, err := tx.Entry(ctx, 102)
		if err != nil {
			return err
		}
		b, err := tx.EntryAt(ctx, 2)
		if err != nil {
			return err
		}
		a, b, err = tx.Swap(ctx, a, b)
		if err != nil {
			return err
		}
		assert.Equal(t, 2, a.StartSequence)
		assert.Equal(t, 3, b.StartSequence)
		assert.Equal(t, 6*time.Minute, *a.StartTime)
		assert.Equal(t, 7*time.Minute, *b.StartTime)
		return nil
	})
	require.NoError(t, err)

	moved, err := s.GetEntry(ctx, 1, 102)
	require.NoError(t, err)
	assert.Equal(t, 2, moved.StartSequence)
	assert.Equal(t, 6*time.Minute, *moved.StartTime)

	displaced, err := s.GetEntry(ctx, 1, 101)
	require.NoError(t, err)
	assert.Equal(t, 3, displaced.StartSequence)
	assert.Equal(t, 7*time.Minute, *displaced.StartTime)
}

func TestRelocate_RollsBackOnError(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	entries := createTestEntries(1, 3)
	require.NoError(t, s.ReplaceEntries(ctx, 1, entries, model.Seeding{}))

	boom := errors.New("boom")
	err := s.Relocate(ctx, 1, func(tx model.ScheduleTx) error {
		a, _ := tx.EntryAt(ctx, 1)
		b, _ := tx.EntryAt(ctx, 2)
		if _, _, err := tx.Swap(ctx, a, b); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.ListEntries(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestRelocate_SwapMissingEntry(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceEntries(ctx, 1, createTestEntries(1, 2), model.Seeding{}))

	err := s.Relocate(ctx, 1, func(tx model.ScheduleTx) error {
		a, err := tx.EntryAt(ctx, 1)
		if err != nil {
			return err
		}
		ghost := model.Entry{EventID: 1, ParticipantID: 555, StartSequence: 2}
		_, _, err = tx.Swap(ctx, a, ghost)
		return err
	})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRelocate_EntryAtHole(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	entries := []model.Entry{
		{EventID: 1, ParticipantID: 1, StartSequence: 1},
		{EventID: 1, ParticipantID: 2, StartSequence: 3},
	}
	require.NoError(t, s.ReplaceEntries(ctx, 1, entries, model.Seeding{}))

	err := s.Relocate(ctx, 1, func(tx model.ScheduleTx) error {
		_, err := tx.EntryAt(ctx, 2)
		return err
	})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRelocate_ScopedToEvent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceEntries(ctx, 1, createTestEntries(1, 2), model.Seeding{}))
	require.NoError(t, s.ReplaceEntries(ctx, 2, createTestEntries(2, 2), model.Seeding{}))

	err := s.Relocate(ctx, 2, func(tx model.ScheduleTx) error {
		a, err := tx.EntryAt(ctx, 1)
		if err != nil {
			return err
		}
		b, err := tx.EntryAt(ctx, 2)
		if err != nil {
			return err
		}
		_, _, err = tx.Swap(ctx, a, b)
		return err
	})
	require.NoError(t, err)

	unchanged, err := s.ListEntries(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, createTestEntries(1, 2), unchanged)

	swapped, err := s.GetEntry(ctx, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, swapped.StartSequence)
}

// Package seeding implements time-trial start sequencing.
//
// The engine orders the participants of each wave by the wave's policy,
// assigns collision-free start times separated by the wave's gap rules, and
// keeps the persisted schedule consistent as single entries are moved.
//
// # Components
//
//   - Sequencer: one pure key function per Policy; keys are compared lexicographically
//   - SequenceWave: orders one wave
//   - Allocate / AllocateWave: fold an Accumulator (clock, next sequence) through the waves
//   - Engine.Regenerate: destructive, atomic replacement of an event's entries
//   - Engine.MoveTo: relocation by adjacent swaps, reporting gaps as a result
//   - Engine.ParticipantsWithSchedule, UnseededCount, HasUnseeded: status queries
//
// # Invariants
//
// After Regenerate, the start sequences of an event form {1..N}, start times
// never decrease with sequence, and consecutive riders of a wave are at least
// MinimumGap apart. MoveTo preserves density and uniqueness of sequences but
// not monotonic times: the moved entry takes its new neighbour's slot time.
//
// # Determinism
//
// Regenerate never reads ambient time for ordering. With the same DateSource
// and unchanged participants, it writes identical entries and the seeding
// fingerprint is identical.
package seeding

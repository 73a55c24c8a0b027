// Package store provides SQLite-backed durable storage for start schedules.
//
// The store keeps two tables:
//   - Entries: one row per (event, participant) with its start sequence and times
//   - Seedings: an audit row per full regeneration (generation id, count, fingerprint)
//
// # Critical Patterns
//
// Uniqueness
//   - PRIMARY KEY(event_id, participant_id)
//   - UNIQUE(event_id, start_sequence)
//   - Violations are reported wrapped around model.ErrConflict
//
// Atomic Regeneration
//   - ReplaceEntries deletes in bounded batches and inserts inside ONE transaction
//   - Readers see either the old or the new entry set, never a mix
//
// Swaps
//   - Sequence 0 is reserved as a parking slot so two rows can exchange
//     sequences without tripping the unique index mid-swap
//
// Deterministic Query Results
//   - Entry queries use ORDER BY start_sequence ASC, participant_id ASC
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - _txlock=immediate: Writers take the write lock at BEGIN and queue
//   - user_version: Schema version; newer databases are refused
package store

package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// DomainSchedule separates schedule fingerprints from any other hash.
const DomainSchedule = "startlist/schedule/v2"

// ScheduleDocument converts entries into the canonical document used for
// fingerprints and golden snapshots. Entries are ordered by start sequence;
// times are integer nanoseconds, so distinct offsets never collide.
func ScheduleDocument(entries []Entry) []any {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartSequence < sorted[j].StartSequence
	})

	doc := make([]any, 0, len(sorted))
	for _, e := range sorted {
		item := map[string]any{
			"participant_id": e.ParticipantID,
			"start_sequence": e.StartSequence,
		}
		if e.StartTime != nil {
			item["start_time_ns"] = int64(*e.StartTime)
		}
		doc = append(doc, item)
	}
	return doc
}

// Fingerprint computes SHA-256 over the canonical schedule document with
// domain separation: SHA256(domain + 0x00 + canonical).
func Fingerprint(entries []Entry) (string, error) {
	canonical, err := MarshalCanonical(ScheduleDocument(entries))
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(DomainSchedule))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

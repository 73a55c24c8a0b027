package testutil

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/startlist/internal/model"
)

// AssertGolden compares the canonical JSON of v against
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run the test with -update:
//
//	go test ./internal/seeding -update
func AssertGolden(t *testing.T, name string, v any) {
	t.Helper()

	data, err := model.MarshalCanonical(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

// AssertScheduleGolden snapshots entries in their canonical schedule form.
func AssertScheduleGolden(t *testing.T, name string, entries []model.Entry) {
	t.Helper()
	AssertGolden(t, name, model.ScheduleDocument(entries))
}

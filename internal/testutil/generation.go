package testutil

// FixedGenerationID returns the same generation ID every time.
//
// The same event regenerated with a FixedGenerationID produces byte-identical
// seeding records, which keeps golden snapshots stable.
//
// Thread-safety: FixedGenerationID is stateless and safe for concurrent use.
type FixedGenerationID struct {
	id string
}

// NewFixedGenerationID creates a fixed generation ID source.
// If id is empty, Generate() returns "test-generation-default".
func NewFixedGenerationID(id string) *FixedGenerationID {
	if id == "" {
		id = "test-generation-default"
	}
	return &FixedGenerationID{id: id}
}

// Generate returns the fixed ID.
func (g *FixedGenerationID) Generate() string {
	return g.id
}

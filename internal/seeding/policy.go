package seeding

import (
	"cmp"
	"time"

	"github.com/roach88/startlist/internal/model"
)

// FastestAge is the age, in years, treated as the fastest typical age when
// no other speed information exists.
const FastestAge = 24.0

// daysPerYear converts an age in days into fractional years.
const daysPerYear = 365.26

// keyPart is one component of an OrderKey. Within one policy a given
// position always holds the same kind of value.
type keyPart struct {
	n    int64
	f    float64
	real bool
}

func intPart(n int64) keyPart     { return keyPart{n: n} }
func floatPart(f float64) keyPart { return keyPart{f: f, real: true} }

func (k keyPart) compare(o keyPart) int {
	if k.real || o.real {
		return cmp.Compare(k.f, o.f)
	}
	return cmp.Compare(k.n, o.n)
}

// OrderKey is a composite sort key compared lexicographically.
type OrderKey []keyPart

// Compare returns -1, 0 or +1 comparing a and b lexicographically.
// A shorter key that is a prefix of a longer one sorts first.
func Compare(a, b OrderKey) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].compare(b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// Sequencer computes the order key of a participant for one policy.
// Every key ends with the participant ID, so no two participants compare equal.
type Sequencer interface {
	Policy() model.Policy
	Key(p model.Participant, ref time.Time) OrderKey
}

type (
	speedIncreasing struct{}
	ageIncreasing   struct{}
	bibIncreasing   struct{}
	ageDecreasing   struct{}
	bibDecreasing   struct{}
)

// SequencerFor returns the Sequencer for policy.
// Returns a policy Error for unknown values.
func SequencerFor(policy model.Policy) (Sequencer, error) {
	switch policy {
	case model.PolicySpeedIncreasing:
		return speedIncreasing{}, nil
	case model.PolicyAgeIncreasing:
		return ageIncreasing{}, nil
	case model.PolicyBibIncreasing:
		return bibIncreasing{}, nil
	case model.PolicyAgeDecreasing:
		return ageDecreasing{}, nil
	case model.PolicyBibDecreasing:
		return bibDecreasing{}, nil
	}
	return nil, NewPolicyError(0, int(policy))
}

func (speedIncreasing) Policy() model.Policy { return model.PolicySpeedIncreasing }

func (speedIncreasing) Key(p model.Participant, ref time.Time) OrderKey {
	return OrderKey{
		seedEarlyPart(p),
		floatPart(p.EstSpeed),
		intPart(-int64(p.Bib)),
		floatPart(AgeMetric(p.DateOfBirth, ref)),
		intPart(p.ID),
	}
}

func (ageIncreasing) Policy() model.Policy { return model.PolicyAgeIncreasing }

func (ageIncreasing) Key(p model.Participant, _ time.Time) OrderKey {
	return OrderKey{
		seedEarlyPart(p),
		intPart(birthDay(p)),
		intPart(-int64(p.Bib)),
		intPart(p.ID),
	}
}

func (bibIncreasing) Policy() model.Policy { return model.PolicyBibIncreasing }

func (bibIncreasing) Key(p model.Participant, ref time.Time) OrderKey {
	return OrderKey{
		seedEarlyPart(p),
		intPart(int64(p.Bib)),
		floatPart(AgeMetric(p.DateOfBirth, ref)),
		intPart(p.ID),
	}
}

func (ageDecreasing) Policy() model.Policy { return model.PolicyAgeDecreasing }

func (ageDecreasing) Key(p model.Participant, ref time.Time) OrderKey {
	return OrderKey{
		seedEarlyPart(p),
		intPart(-birthDay(p)),
		intPart(-int64(p.Bib)),
		floatPart(AgeMetric(p.DateOfBirth, ref)),
		intPart(p.ID),
	}
}

func (bibDecreasing) Policy() model.Policy { return model.PolicyBibDecreasing }

func (bibDecreasing) Key(p model.Participant, ref time.Time) OrderKey {
	return OrderKey{
		seedEarlyPart(p),
		intPart(-int64(p.Bib)),
		floatPart(AgeMetric(p.DateOfBirth, ref)),
		intPart(p.ID),
	}
}

// seedEarlyPart puts seed-early participants ahead of everyone else.
func seedEarlyPart(p model.Participant) keyPart {
	if p.SeedEarly {
		return intPart(0)
	}
	return intPart(1)
}

// birthDay is the date of birth as whole days since the Unix epoch.
func birthDay(p model.Participant) int64 {
	return DateOnly(p.DateOfBirth).Unix() / 86400
}

// AgeMetric scores how close a rider's age at ref is to FastestAge.
// The score is 0 at exactly FastestAge and falls off quadratically; being
// younger is penalized four times as much as being older.
func AgeMetric(dateOfBirth, ref time.Time) float64 {
	days := int64(DateOnly(ref).Sub(DateOnly(dateOfBirth)).Hours()) / 24
	dy := float64(days)/daysPerYear - FastestAge
	if dy < 0 {
		dy *= 4
	}
	return -(dy * dy)
}

package model

import (
	"fmt"
	"strings"
	"time"
)

// Policy selects how participants of a wave are ordered.
// The numeric values are the stored option codes and must not change.
type Policy int

const (
	PolicySpeedIncreasing Policy = 0
	PolicyAgeIncreasing   Policy = 1
	PolicyBibIncreasing   Policy = 2
	PolicyAgeDecreasing   Policy = 3
	PolicyBibDecreasing   Policy = 4
)

var policyNames = map[Policy]string{
	PolicySpeedIncreasing: "speed-increasing",
	PolicyAgeIncreasing:   "age-increasing",
	PolicyBibIncreasing:   "bib-increasing",
	PolicyAgeDecreasing:   "age-decreasing",
	PolicyBibDecreasing:   "bib-decreasing",
}

// String returns the policy name, or "policy(N)" for unknown values.
func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Valid reports whether p is one of the five known policies.
func (p Policy) Valid() bool {
	_, ok := policyNames[p]
	return ok
}

// ParsePolicy converts a policy name into a Policy.
func ParsePolicy(name string) (Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown sequence policy %q", name)
}

// Default gap rules for a newly created wave.
const (
	DefaultGapBeforeWave = 5 * time.Minute
	DefaultRegularGap    = 1 * time.Minute
	DefaultFastGap       = 2 * time.Minute
	DefaultNumFastest    = 5
)

// GapRules parametrize start time allocation for one wave.
type GapRules struct {
	GapBeforeWave time.Duration `json:"gap_before_wave"`
	RegularGap    time.Duration `json:"regular_gap"`
	FastGap       time.Duration `json:"fast_gap"`
	NumFastest    int           `json:"num_fastest"`
}

// DefaultGapRules returns the rules a wave gets when none are configured.
func DefaultGapRules() GapRules {
	return GapRules{
		GapBeforeWave: DefaultGapBeforeWave,
		RegularGap:    DefaultRegularGap,
		FastGap:       DefaultFastGap,
		NumFastest:    DefaultNumFastest,
	}
}

// String summarizes the rules, omitting the fast gap when no rider gets it.
func (g GapRules) String() string {
	parts := []string{
		"GapBefore=" + g.GapBeforeWave.String(),
		"RegGap=" + g.RegularGap.String(),
	}
	if g.NumFastest > 0 {
		parts = append(parts,
			"FastGap="+g.FastGap.String(),
			fmt.Sprintf("NumFast=%d", g.NumFastest),
		)
	}
	return strings.Join(parts, " ")
}

// Wave is a start group within an Event.
type Wave struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Sequence   int      `json:"sequence"`
	Policy     Policy   `json:"policy"`
	Distance   float64  `json:"distance,omitempty"`
	Laps       int      `json:"laps,omitempty"`
	Gaps       GapRules `json:"gaps"`
	Categories []string `json:"categories"`
}

// HasCategory reports whether the wave selects participants of category code.
func (w Wave) HasCategory(code string) bool {
	for _, c := range w.Categories {
		if c == code {
			return true
		}
	}
	return false
}

// TotalDistance returns distance times laps, or distance when laps is unset.
func (w Wave) TotalDistance() float64 {
	if w.Laps > 0 {
		return w.Distance * float64(w.Laps)
	}
	return w.Distance
}

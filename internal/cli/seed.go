package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/startlist/internal/seeding"
)

// SeedResult is the output of the seed command.
type SeedResult struct {
	EventID      int64  `json:"event_id"`
	Entries      int    `json:"entries"`
	GenerationID string `json:"generation_id,omitempty"`
	Fingerprint  string `json:"fingerprint,omitempty"`
	DryRun       bool   `json:"dry_run,omitempty"`

	Plan []seeding.Assignment `json:"plan,omitempty"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed <event-file>",
		Short: "Regenerate the start list of an event",
		Long: `Regenerate the start list of an event from scratch.

Every wave is ordered by its policy and allocated start times from its gap
rules. The previous entries of the event are replaced in one transaction and
an audit record with the schedule fingerprint is written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(rootOpts, dbPath, dryRun, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the planned schedule without writing it")

	return cmd
}

func runSeed(opts *RootOptions, dbPath string, dryRun bool, eventPath string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd, dbPath, eventPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if dryRun {
		plan, err := s.engine.Plan(cmd.Context(), s.event)
		if err != nil {
			return s.out.Fail("plan start list", err)
		}
		return outputPlan(s, plan)
	}

	sd, err := s.engine.Regenerate(cmd.Context(), s.event)
	if err != nil {
		return s.out.Fail("regenerate start list", err)
	}

	result := SeedResult{
		EventID:      sd.EventID,
		Entries:      sd.Entries,
		GenerationID: sd.GenerationID,
		Fingerprint:  sd.Fingerprint,
	}
	if s.out.Format == "json" {
		return s.out.Success(result)
	}

	w := s.out.Writer
	fmt.Fprintf(w, "✓ Seeded event %d: %d entries\n", result.EventID, result.Entries)
	fmt.Fprintf(w, "  generation:  %s\n", result.GenerationID)
	fmt.Fprintf(w, "  fingerprint: %s\n", result.Fingerprint)
	return nil
}

func outputPlan(s *session, plan []seeding.Assignment) error {
	if s.out.Format == "json" {
		return s.out.Success(SeedResult{
			EventID: s.event.ID,
			Entries: len(plan),
			DryRun:  true,
			Plan:    plan,
		})
	}

	w := s.out.Writer
	fmt.Fprintf(w, "Planned start list for event %d (%d entries, not written)\n", s.event.ID, len(plan))
	for _, a := range plan {
		fmt.Fprintf(w, "%4d  %-8d  wave %-4d  %s\n", a.StartSequence, a.ParticipantID, a.WaveID, formatOffset(a.StartTime))
	}
	return nil
}

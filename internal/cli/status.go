package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/startlist/internal/model"
)

// StatusResult is the output of the status command.
type StatusResult struct {
	EventID     int64 `json:"event_id"`
	Seeded      bool  `json:"seeded"`
	Unseeded    int   `json:"unseeded"`
	HasUnseeded bool  `json:"has_unseeded"`

	WaveID               int64               `json:"wave_id,omitempty"`
	UnseededParticipants []model.Participant `json:"unseeded_participants,omitempty"`
	LateRegistrations    []model.Participant `json:"late_registrations,omitempty"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string
	var waveID int64
	var closure time.Duration

	cmd := &cobra.Command{
		Use:   "status <event-file>",
		Short: "Report participants without a start slot",
		Long: `Report how many participants of an event have no start slot yet.

With --wave the unseeded participants of that wave are listed. With
--closure the wave members who registered later than that long before the
event start are listed too, limited to the --wave wave when given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(rootOpts, dbPath, waveID, closure, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().Int64Var(&waveID, "wave", 0, "list the unseeded participants of this wave")
	cmd.Flags().DurationVar(&closure, "closure", 0, "registration closure before the event start (e.g. 24h)")

	return cmd
}

func runStatus(opts *RootOptions, dbPath string, waveID int64, closure time.Duration, eventPath string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd, dbPath, eventPath)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	count, err := s.engine.UnseededCount(ctx, s.event)
	if err != nil {
		return s.out.Fail("count unseeded participants", err)
	}
	has, err := s.engine.HasUnseeded(ctx, s.event)
	if err != nil {
		return s.out.Fail("check unseeded participants", err)
	}

	result := StatusResult{
		EventID:     s.event.ID,
		Seeded:      s.event.SeededStartlist,
		Unseeded:    count,
		HasUnseeded: has,
	}

	if waveID != 0 {
		ps, err := s.engine.UnseededParticipants(ctx, s.event, waveID)
		if err != nil {
			return s.out.Fail("list unseeded participants", err)
		}
		result.WaveID = waveID
		result.UnseededParticipants = ps
	}
	if closure > 0 {
		late, err := s.engine.LateRegistrations(ctx, s.event, waveID, closure)
		if err != nil {
			return s.out.Fail("list late registrations", err)
		}
		result.LateRegistrations = late
	}

	if s.out.Format == "json" {
		return s.out.Success(result)
	}

	w := s.out.Writer
	fmt.Fprintf(w, "Event %d (%s)\n", s.event.ID, s.event.Name)
	if !result.Seeded {
		fmt.Fprintln(w, "  seeding is off for this event")
	}
	fmt.Fprintf(w, "  unseeded: %d\n", result.Unseeded)
	if waveID != 0 {
		fmt.Fprintf(w, "  unseeded in wave %d:\n", waveID)
		writeParticipants(s.out, result.UnseededParticipants)
	}
	if closure > 0 {
		fmt.Fprintf(w, "  registered within %s of the start:\n", closure)
		writeParticipants(s.out, result.LateRegistrations)
	}
	return nil
}

func writeParticipants(out *OutputFormatter, ps []model.Participant) {
	if len(ps) == 0 {
		fmt.Fprintln(out.Writer, "    (none)")
		return
	}
	for _, p := range ps {
		fmt.Fprintf(out.Writer, "    %-8d %-4s %s\n", p.ID, bibLabel(p.Bib), p.Name)
	}
}

func bibLabel(bib int) string {
	if bib == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", bib)
}

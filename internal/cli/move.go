package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/startlist/internal/seeding"
)

// MoveResult is the output of the move command.
type MoveResult struct {
	EventID       int64 `json:"event_id"`
	ParticipantID int64 `json:"participant_id"`
	seeding.Relocation
}

// NewMoveCommand creates the move command.
func NewMoveCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string
	var participantID int64
	var target int

	cmd := &cobra.Command{
		Use:   "move <event-file>",
		Short: "Move a participant to another start sequence",
		Long: `Move a participant to another start sequence.

The entry walks toward the target by swapping sequence and start time with
each neighbour in turn. When a neighbour is missing the move stops there,
keeps the swaps already made, and the command exits with status 1.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(rootOpts, dbPath, participantID, target, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().Int64Var(&participantID, "participant", 0, "participant id to move (required)")
	cmd.Flags().IntVar(&target, "to", 0, "target start sequence (required)")
	_ = cmd.MarkFlagRequired("participant")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runMove(opts *RootOptions, dbPath string, participantID int64, target int, eventPath string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd, dbPath, eventPath)
	if err != nil {
		return err
	}
	defer s.Close()

	rel, err := s.engine.MoveTo(cmd.Context(), s.event.ID, participantID, target)
	if err != nil {
		return s.out.Fail("move participant", err)
	}

	result := MoveResult{EventID: s.event.ID, ParticipantID: participantID, Relocation: rel}
	if !rel.Moved {
		if s.out.Format == "json" {
			_ = s.out.Error(ErrCodeNotMoved, rel.Reason, result)
		} else {
			fmt.Fprintf(s.out.Writer, "✗ Move of participant %d stopped at sequence %d after %d step(s)\n",
				participantID, rel.To, rel.Steps)
			fmt.Fprintf(s.out.Writer, "  %s\n", rel.Reason)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", ErrCodeNotMoved, rel.Reason))
	}

	if s.out.Format == "json" {
		return s.out.Success(result)
	}
	fmt.Fprintf(s.out.Writer, "✓ Moved participant %d from %d to %d (%d step(s))\n",
		participantID, rel.From, rel.To, rel.Steps)
	return nil
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "history <event-file>",
		Short: "List past regenerations of an event",
		Long: `List the audit records written by each seed run of an event, oldest
first. Two runs over unchanged participants and the same reference date
share a fingerprint.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, dbPath, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to SQLite database (default from config)")

	return cmd
}

func runHistory(opts *RootOptions, dbPath, eventPath string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd, dbPath, eventPath)
	if err != nil {
		return err
	}
	defer s.Close()

	seedings, err := s.store.ListSeedings(cmd.Context(), s.event.ID)
	if err != nil {
		_ = s.out.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "list seedings", err)
	}

	if s.out.Format == "json" {
		return s.out.Success(seedings)
	}

	w := s.out.Writer
	if len(seedings) == 0 {
		fmt.Fprintf(w, "No seedings recorded for event %d\n", s.event.ID)
		return nil
	}
	for _, sd := range seedings {
		fp := sd.Fingerprint
		if len(fp) > 12 {
			fp = fp[:12]
		}
		fmt.Fprintf(w, "%s  %-36s  %4d entries  %s\n",
			sd.CreatedAt.Format(time.RFC3339), sd.GenerationID, sd.Entries, fp)
	}
	return nil
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // optional YAML or JSON config file
	Date    string // reference date YYYY-MM-DD; empty means today
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// DateLayout is the layout of the --date flag.
const DateLayout = "2006-01-02"

// NewRootCommand creates the root command for the startlist CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "startlist",
		Short: "startlist - time-trial start sequencing",
		Long: `Generate and maintain time-trial start lists.

Participants are ordered within each wave by the wave's ordering policy and
given start times from its gap rules. The resulting schedule is kept in a
SQLite store and can be adjusted by moving individual riders.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Date != "" {
				if _, err := time.Parse(DateLayout, opts.Date); err != nil {
					return fmt.Errorf("invalid date %q: want YYYY-MM-DD", opts.Date)
				}
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (.yaml, .yml or .json)")
	cmd.PersistentFlags().StringVar(&opts.Date, "date", "", "reference date for age ordering (YYYY-MM-DD, default today)")

	// Add subcommands
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewMoveCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewStartlistCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

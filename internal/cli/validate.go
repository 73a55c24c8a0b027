package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/startlist/internal/eventfile"
	"github.com/roach88/startlist/internal/seeding"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid        bool          `json:"valid"`
	EventID      int64         `json:"event_id,omitempty"`
	Name         string        `json:"name,omitempty"`
	Participants int           `json:"participants"`
	Entries      int           `json:"entries"`
	Waves        []WaveSummary `json:"waves,omitempty"`
}

// WaveSummary describes one wave of a valid event file.
type WaveSummary struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Policy       string `json:"policy"`
	Gaps         string `json:"gaps"`
	Participants int    `json:"participants"`
}

// ValidationDetails locates a validation failure in the event file.
type ValidationDetails struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <event-file>",
		Short: "Validate an event file without touching the store",
		Long: `Validate a YAML or CUE event definition.

Checks the file against the event schema, resolves every wave's
participants and plans the schedule in memory. Unknown policies and
participants that fall into two waves are reported. Nothing is written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, eventPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	dates, err := dateSource(opts.Date)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidDate, err.Error(), nil)
		return WrapExitError(ExitCommandError, "parse date", err)
	}

	event, resolver, err := eventfile.Open(eventPath)
	if err != nil {
		return outputValidateError(formatter, eventPath, err)
	}
	formatter.VerboseLog("Loaded event %d with %d wave(s) from %s", event.ID, len(event.Waves), eventPath)

	// Planning needs no store: it only resolves and allocates.
	engine := seeding.New(nil, resolver, seeding.WithDateSource(dates))
	plan, err := engine.Plan(cmd.Context(), event)
	if err != nil {
		return outputValidateError(formatter, eventPath, err)
	}

	result := ValidationResult{
		Valid:        true,
		EventID:      event.ID,
		Name:         event.Name,
		Participants: len(resolver.Participants()),
		Entries:      len(plan),
	}
	for _, w := range event.OrderedWaves() {
		ps, err := resolver.WaveParticipants(cmd.Context(), event, w)
		if err != nil {
			return outputValidateError(formatter, eventPath, err)
		}
		result.Waves = append(result.Waves, WaveSummary{
			ID:           w.ID,
			Name:         w.Name,
			Policy:       w.Policy.String(),
			Gaps:         w.Gaps.String(),
			Participants: len(ps),
		})
	}

	return outputValidateSuccess(formatter, result)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Event %d valid: %d participant(s), %d entr(ies) planned\n",
		result.EventID, result.Participants, result.Entries)
	for _, wave := range result.Waves {
		fmt.Fprintf(w, "  wave %d %-16s %-17s %3d  %s\n",
			wave.ID, wave.Name, wave.Policy, wave.Participants, wave.Gaps)
	}
	return nil
}

// outputValidateError reports a failed validation. Invalid event files are
// domain failures (exit code 1).
func outputValidateError(formatter *OutputFormatter, path string, err error) error {
	code, exit := classifyError(err)
	if code == ErrCodeGeneric {
		code = ErrCodeEventFile
	}

	details := ValidationDetails{File: path}
	var loadErr *eventfile.LoadError
	if errors.As(err, &loadErr) && loadErr.Pos.IsValid() {
		details.Line = loadErr.Pos.Line()
		details.Column = loadErr.Pos.Column()
	}

	if formatter.Format == "json" {
		_ = formatter.Error(code, err.Error(), details)
	} else {
		fmt.Fprintln(formatter.Writer, "✗ Validation failed")
		if details.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", details.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", code, err.Error())
	}
	return WrapExitError(exit, fmt.Sprintf("%s: validation failed", code), err)
}

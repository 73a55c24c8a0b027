package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/startlist/internal/model"
)

// StartlistRow is one line of a printed start list.
type StartlistRow struct {
	Position      int    `json:"position"`
	ParticipantID int64  `json:"participant_id"`
	Name          string `json:"name"`
	Bib           int    `json:"bib,omitempty"`
	WaveID        int64  `json:"wave_id"`
	StartTime     string `json:"start_time,omitempty"`
	ClockTime     string `json:"clock_time,omitempty"`
	GapChange     bool   `json:"gap_change,omitempty"`

	// Speed is the average speed over the wave distance once a finish
	// time is recorded.
	Speed float64 `json:"speed,omitempty"`
}

// StartTimeResult is the output of startlist --participant.
type StartTimeResult struct {
	EventID       int64  `json:"event_id"`
	ParticipantID int64  `json:"participant_id"`
	Scheduled     bool   `json:"scheduled"`
	StartTime     string `json:"start_time,omitempty"`
	ClockTime     string `json:"clock_time,omitempty"`
}

// NewStartlistCommand creates the startlist command.
func NewStartlistCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string
	var waveID int64
	var participantID int64

	cmd := &cobra.Command{
		Use:   "startlist <event-file>",
		Short: "Print the start list of an event",
		Long: `Print the start list of an event in start order.

Each row shows the start offset from the event start and the clock time.
Rows marked with * start after a different gap than the row before them.
Participants without a start slot are listed last. Once a finish time has
been recorded the average speed over the wave distance is shown too.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStartlist(rootOpts, dbPath, waveID, participantID, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().Int64Var(&waveID, "wave", 0, "print only this wave")
	cmd.Flags().Int64Var(&participantID, "participant", 0, "print only this participant's start time")

	return cmd
}

func runStartlist(opts *RootOptions, dbPath string, waveID, participantID int64, eventPath string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd, dbPath, eventPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if participantID != 0 {
		return runStartTime(s, cmd, participantID)
	}

	var list []model.ScheduledParticipant
	if waveID != 0 {
		list, err = s.engine.WaveSchedule(cmd.Context(), s.event, waveID)
	} else {
		list, err = s.engine.ParticipantsWithSchedule(cmd.Context(), s.event)
	}
	if err != nil {
		return s.out.Fail("load start list", err)
	}

	rows := startlistRows(list)
	if s.out.Format == "json" {
		return s.out.Success(rows)
	}

	w := s.out.Writer
	fmt.Fprintf(w, "%s  %s\n", s.event.Name, s.event.Start.Format("2006-01-02 15:04 MST"))
	for _, r := range rows {
		marker := " "
		if r.GapChange {
			marker = "*"
		}
		start, clock := r.StartTime, r.ClockTime
		if start == "" {
			start, clock = "-", "-"
		}
		line := fmt.Sprintf("%s%3d  %-4s %-24s wave %-4d %-10s %s",
			marker, r.Position, bibLabel(r.Bib), r.Name, r.WaveID, start, clock)
		if r.Speed > 0 {
			line += fmt.Sprintf("  %.1f", r.Speed)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func runStartTime(s *session, cmd *cobra.Command, participantID int64) error {
	offset, err := s.engine.StartTime(cmd.Context(), s.event, participantID)
	if err != nil {
		return s.out.Fail("load start time", err)
	}

	result := StartTimeResult{EventID: s.event.ID, ParticipantID: participantID}
	if offset != nil {
		result.Scheduled = true
		result.StartTime = formatOffset(*offset)
		result.ClockTime = s.event.ClockTime(offset).Format("15:04:05")
	}

	if s.out.Format == "json" {
		return s.out.Success(result)
	}
	if !result.Scheduled {
		fmt.Fprintf(s.out.Writer, "participant %d: not scheduled\n", participantID)
		return nil
	}
	fmt.Fprintf(s.out.Writer, "participant %d: %s (%s)\n", participantID, result.StartTime, result.ClockTime)
	return nil
}

func startlistRows(list []model.ScheduledParticipant) []StartlistRow {
	rows := make([]StartlistRow, 0, len(list))
	for i, sp := range list {
		row := StartlistRow{
			Position:      i + 1,
			ParticipantID: sp.ID,
			Name:          sp.Name,
			Bib:           sp.Bib,
			WaveID:        sp.WaveID,
			GapChange:     sp.GapChange,
			Speed:         sp.Speed,
		}
		if sp.StartTime != nil {
			row.StartTime = formatOffset(*sp.StartTime)
		}
		if sp.ClockTime != nil {
			row.ClockTime = sp.ClockTime.Format("15:04:05")
		}
		rows = append(rows, row)
	}
	return rows
}

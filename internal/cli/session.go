package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/startlist/internal/config"
	"github.com/roach88/startlist/internal/eventfile"
	"github.com/roach88/startlist/internal/model"
	"github.com/roach88/startlist/internal/seeding"
	"github.com/roach88/startlist/internal/store"
	"github.com/roach88/startlist/internal/telemetry"
)

// session holds what every store-backed command needs: the resolved
// config, the open store, the loaded event and an engine over both.
type session struct {
	cfg      config.Config
	store    *store.Store
	event    model.Event
	resolver *eventfile.Resolver
	engine   *seeding.Engine
	out      *OutputFormatter
	shutdown func(context.Context) error
}

// telemetryFlushTimeout bounds how long Close waits for exporters.
const telemetryFlushTimeout = 5 * time.Second

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// loadConfig reads --config when given, then STARTLIST_* variables.
// Flags set on the command line win over both.
func loadConfig(opts *RootOptions, cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.FromFile(opts.Config); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := cfg.WithEnv()
	if err != nil {
		return config.Config{}, err
	}

	// Without a config file or STARTLIST_FORMAT the flag default applies.
	if f := cmd.Flags().Lookup("format"); (f != nil && f.Changed) || cfg.Format == config.DefaultFormat {
		cfg.Format = opts.Format
	}
	return cfg, nil
}

// dateSource returns the engine's reference date: --date when set, else today.
func dateSource(date string) (seeding.DateSource, error) {
	if date == "" {
		return seeding.SystemDate{}, nil
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	return seeding.FixedDate(t), nil
}

// openSession loads config and the event file, then opens the store.
// Failures are already reported through the formatter when it returns.
func openSession(opts *RootOptions, cmd *cobra.Command, dbPath, eventPath string) (*session, error) {
	out := newFormatter(opts, cmd)

	cfg, err := loadConfig(opts, cmd)
	if err != nil {
		_ = out.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}
	out.Format = cfg.Format
	if dbPath != "" {
		cfg.Database = dbPath
	}

	dates, err := dateSource(opts.Date)
	if err != nil {
		_ = out.Error(ErrCodeInvalidDate, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "parse date", err)
	}

	event, resolver, err := eventfile.Open(eventPath)
	if err != nil {
		_ = out.Error(ErrCodeEventFile, err.Error(), nil)
		return nil, WrapExitError(ExitFailure, "load event file", err)
	}

	st, err := store.Open(cfg.Database, store.WithDeleteBatchSize(cfg.DeleteBatchSize))
	if err != nil {
		_ = out.Error(ErrCodeStore, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "open store", err)
	}

	logger := telemetry.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, opts.Verbose)
	shutdown, err := telemetry.Setup(cmd.Context(), cfg.OTelEndpoint)
	if err != nil {
		// Export is optional; carry on without it.
		logger.Warn("telemetry export disabled", "endpoint", cfg.OTelEndpoint, "error", err)
	}
	engine := seeding.New(st, resolver,
		seeding.WithDateSource(dates),
		seeding.WithLogger(logger),
		seeding.WithRecorder(telemetry.NewRecorder()),
	)

	out.VerboseLog("Event %d (%s): %d wave(s), database %s", event.ID, event.Name, len(event.Waves), cfg.Database)

	return &session{
		cfg:      cfg,
		store:    st,
		event:    event,
		resolver: resolver,
		engine:   engine,
		out:      out,
		shutdown: shutdown,
	}, nil
}

// Close flushes exported telemetry and closes the store.
func (s *session) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
	defer cancel()
	return errors.Join(s.shutdown(ctx), s.store.Close())
}

// formatOffset renders a start offset as +H:MM:SS.
func formatOffset(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d%time.Hour) / int(time.Minute)
	sec := int(d%time.Minute) / int(time.Second)
	return fmt.Sprintf("+%d:%02d:%02d", h, m, sec)
}

// Package cli defines the cobra command tree for hbt.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/j-veylop/hotel-booking-tui/internal/app"
	"github.com/j-veylop/hotel-booking-tui/internal/config"
	"github.com/j-veylop/hotel-booking-tui/internal/logger"
	"github.com/j-veylop/hotel-booking-tui/internal/pipeline"
	"github.com/j-veylop/hotel-booking-tui/internal/services"
	"github.com/j-veylop/hotel-booking-tui/internal/ui/tabs/charts"
	"github.com/j-veylop/hotel-booking-tui/internal/ui/tabs/info"
	"github.com/j-veylop/hotel-booking-tui/internal/ui/tabs/store"
	"github.com/j-veylop/hotel-booking-tui/internal/version"
)

// options holds the global flags. Non-empty values override the
// environment configuration.
type options struct {
	data   string
	db     string
	driver string
}

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "hbt",
		Short: "Explore hotel booking statistics in the terminal",
		Long: `Load a hotel bookings file, compute six aggregate views and browse them as
terminal charts. Views can be persisted to SQLite or PostgreSQL and exported
to CSV or XLSX.`,
		Version:       version.Info(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVar(&opts.data, "data", "", "bookings file, CSV or XLSX (default: $BOOKINGS_PATH)")
	root.PersistentFlags().StringVar(&opts.db, "db", "", "store DSN or SQLite path (default: $DATABASE_DSN)")
	root.PersistentFlags().StringVar(&opts.driver, "driver", "", "store driver, sqlite or postgres (default: $STORE_DRIVER)")

	root.AddCommand(
		newViewCmd(opts),
		newPersistCmd(opts),
		newExportCmd(opts),
		newVersionCmd(),
	)

	return root
}

// config loads the environment configuration, applies flag overrides and
// then fills defaults and validates the result.
func (o *options) config() (*config.Config, error) {
	cfg, err := config.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if o.data != "" {
		cfg.BookingsPath = o.data
	}
	if o.driver != "" {
		cfg.StoreDriver = o.driver
	}
	if o.db != "" {
		cfg.DatabaseDSN = o.db
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads the configuration for a subcommand. Subcommands log to stderr.
func (o *options) setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// closeManager closes the service manager, printing any error to stderr.
func closeManager(cmd *cobra.Command, mgr *services.Manager) {
	if err := mgr.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: error closing services: %v\n", err)
	}
}

// runTUI loads the dataset and runs the terminal UI. With PERSIST_ON_START
// the views are stored in the background while the UI is already up.
func runTUI(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat, logFile); err != nil {
		return err
	}

	p, err := pipeline.Load(cfg.BookingsPath)
	if err != nil {
		return err
	}

	mgr := services.NewManager(cfg, p)
	defer closeManager(cmd, mgr)

	model := app.NewModel(mgr)
	state := model.GetState()
	model.SetTabs([]app.Tab{
		charts.New(state, p),
		store.New(state),
		info.New(state, cfg),
	})

	program := tea.NewProgram(model, tea.WithAltScreen())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	done := make(chan struct{})
	defer close(done)
	go forwardSignals(sigChan, done, func() { program.Send(tea.Quit()) })

	var background func(context.Context)
	if cfg.PersistOnStart {
		background = func(ctx context.Context) {
			// Failures reach the UI as service events and must not stop it.
			if _, err := mgr.Persist(ctx); err != nil {
				logger.Warn("Persist on start failed", "error", err)
			}
		}
	}

	return supervise(cmd.Context(), func() error {
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	}, background)
}

// forwardSignals calls quit for the first signal on sigChan. It returns
// when done is closed.
func forwardSignals(sigChan <-chan os.Signal, done <-chan struct{}, quit func()) {
	select {
	case <-sigChan:
		quit()
	case <-done:
	}
}

// supervise runs the UI and an optional background task. The task's context
// is cancelled as soon as the UI returns, so quitting never waits on it.
func supervise(parent context.Context, run func() error, background func(context.Context)) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if background != nil {
		g.Go(func() error {
			background(ctx)
			return nil
		})
	}
	g.Go(func() error {
		defer cancel()
		return run()
	})
	return g.Wait()
}

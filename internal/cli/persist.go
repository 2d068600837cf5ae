package cli

import (
	"github.com/spf13/cobra"

	"github.com/j-veylop/hotel-booking-tui/internal/pipeline"
	"github.com/j-veylop/hotel-booking-tui/internal/services"
)

func newPersistCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "persist",
		Short: "Store every view",
		Long:  "Store all six views in the configured store. Existing tables are upserted by their natural key.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPersist(cmd, opts)
		},
	}
}

func runPersist(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.Load(cfg.BookingsPath)
	if err != nil {
		return err
	}

	mgr := services.NewManager(cfg, p)
	defer closeManager(cmd, mgr)

	reports, err := mgr.Persist(cmd.Context())
	// Tables stored before a failure are still reported.
	if printErr := printReports(cmd.OutOrStdout(), reports); printErr != nil && err == nil {
		err = printErr
	}
	return err
}

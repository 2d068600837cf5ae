package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/j-veylop/hotel-booking-tui/internal/db"
	"github.com/j-veylop/hotel-booking-tui/internal/pipeline"
	"github.com/j-veylop/hotel-booking-tui/internal/services"
)

func newExportCmd(opts *options) *cobra.Command {
	var (
		dir     string
		xlsx    string
		persist bool
	)

	cmd := &cobra.Command{
		Use:   "export [table...]",
		Short: "Export stored tables to CSV",
		Long: `Write stored view tables to <dir>/<table>.csv, all tables by default.
With --xlsx the same tables are also written as sheets of one workbook.`,
		ValidArgs: db.TableNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts, args, dir, xlsx, persist)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "export directory (default: $EXPORT_DIR)")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "also write an XLSX workbook to this path")
	cmd.Flags().BoolVar(&persist, "persist", false, "store the views before exporting")

	return cmd
}

func runExport(cmd *cobra.Command, opts *options, tables []string, dir, xlsx string, persist bool) error {
	for _, table := range tables {
		if _, err := db.Columns(table); err != nil {
			return err
		}
	}

	cfg, err := opts.setup(cmd)
	if err != nil {
		return err
	}
	if dir != "" {
		cfg.ExportDir = dir
	}
	if xlsx != "" {
		cfg.ExportWorkbook = xlsx
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var p *pipeline.Pipeline
	if persist {
		if p, err = pipeline.Load(cfg.BookingsPath); err != nil {
			return err
		}
	}

	mgr := services.NewManager(cfg, p)
	defer closeManager(cmd, mgr)

	if persist {
		reports, err := mgr.Persist(cmd.Context())
		if err != nil {
			return err
		}
		if err := printReports(cmd.OutOrStdout(), reports); err != nil {
			return err
		}
	}

	results, err := mgr.Export(cmd.Context(), tables)
	if printErr := printExports(cmd.OutOrStdout(), results); printErr != nil && err == nil {
		err = printErr
	}
	if err != nil {
		return err
	}

	if cfg.ExportWorkbook != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Workbook: %s\n", cfg.ExportWorkbook)
	}
	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/j-veylop/hotel-booking-tui/internal/models"
	"github.com/j-veylop/hotel-booking-tui/internal/pipeline"
	"github.com/j-veylop/hotel-booking-tui/internal/ui/components"
	"github.com/j-veylop/hotel-booking-tui/internal/views"
)

func newViewCmd(opts *options) *cobra.Command {
	var width, height int

	names := make([]string, len(models.ViewNames))
	for i, name := range models.ViewNames {
		names[i] = string(name)
	}

	cmd := &cobra.Command{
		Use:       "view <name>",
		Short:     "Print one chart",
		Long:      "Print the named chart to stdout. Views: " + strings.Join(names, ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts, models.ViewName(args[0]), width, height)
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "chart width in columns")
	cmd.Flags().IntVar(&height, "height", 15, "chart height in rows")

	return cmd
}

func runView(cmd *cobra.Command, opts *options, name models.ViewName, width, height int) error {
	// Reject unknown names before reading the dataset.
	if !name.IsKnown() {
		return fmt.Errorf("%w: %q", views.ErrUnknownView, name)
	}

	cfg, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.Load(cfg.BookingsPath)
	if err != nil {
		return err
	}

	v, err := p.GetView(name)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), components.RenderView(v, width, height))
	return nil
}

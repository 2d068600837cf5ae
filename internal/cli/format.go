package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/j-veylop/hotel-booking-tui/internal/db"
	"github.com/j-veylop/hotel-booking-tui/internal/exporter"
)

// printReports prints one line per stored table.
func printReports(out io.Writer, reports []db.StoreReport) error {
	if len(reports) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tROWS\tSTATUS")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Table, humanize.Comma(int64(r.Rows)), reportStatus(r))
	}
	return w.Flush()
}

// reportStatus describes how a table was written.
func reportStatus(r db.StoreReport) string {
	if r.Existed {
		return "upserted (table existed)"
	}
	return "created"
}

// printExports prints one line per exported file.
func printExports(out io.Writer, results []exporter.Result) error {
	if len(results) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tROWS\tFILE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Table, humanize.Comma(int64(r.Rows)), r.Path)
	}
	return w.Flush()
}

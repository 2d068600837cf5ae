package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/hotel-booking-tui/internal/db"
	"github.com/j-veylop/hotel-booking-tui/internal/views"
)

func TestViewRequiresName(t *testing.T) {
	if _, err := executeCommand("view"); err == nil {
		t.Fatal("expected error when no view name provided")
	}
}

func TestViewUnknown(t *testing.T) {
	_, err := executeCommand("view", "occupancy")
	if !errors.Is(err, views.ErrUnknownView) {
		t.Fatalf("err = %v, want ErrUnknownView", err)
	}
}

func TestView(t *testing.T) {
	testEnv(t)

	tests := []struct {
		name string
		want []string
	}{
		{"mean_nights_per_hotel", []string{"Mean number of nights per hotel", "Resort Hotel", "City Hotel"}},
		{"cancel_percentage_per_hotel", []string{"50.0%"}},
		{"traveler_type_bookings", []string{"Solo Adult", "Couple", "Family"}},
		{"trends_over_time", []string{"Jul 2015 - Aug 2015"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand("view", tt.name, "--width", "70")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			out = ansi.Strip(out)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestPersist(t *testing.T) {
	testEnv(t)

	out, err := executeCommand("persist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, table := range db.TableNames() {
		if !strings.Contains(out, table) {
			t.Errorf("report missing %s", table)
		}
	}
	if !strings.Contains(out, "created") || strings.Contains(out, "upserted") {
		t.Errorf("first run should create every table:\n%s", out)
	}

	out, err = executeCommand("persist")
	if err != nil {
		t.Fatalf("second persist failed: %v", err)
	}
	if strings.Count(out, "upserted (table existed)") != len(db.TableNames()) {
		t.Errorf("second run should upsert every table:\n%s", out)
	}
}

func TestExport(t *testing.T) {
	dir := testEnv(t)
	workbook := filepath.Join(dir, "views.xlsx")

	out, err := executeCommand("export", "--persist", "--xlsx", workbook)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, table := range db.TableNames() {
		if _, err := os.Stat(filepath.Join(dir, "exports", table+".csv")); err != nil {
			t.Errorf("missing export for %s: %v", table, err)
		}
	}
	if _, err := os.Stat(workbook); err != nil {
		t.Errorf("missing workbook: %v", err)
	}
	if !strings.Contains(out, "Workbook: "+workbook) {
		t.Errorf("output should name the workbook:\n%s", out)
	}
}

func TestExportSelectedTables(t *testing.T) {
	dir := testEnv(t)
	exports := filepath.Join(dir, "selected")

	if _, err := executeCommand("persist"); err != nil {
		t.Fatalf("persist failed: %v", err)
	}
	if _, err := executeCommand("export", "room_type_distribution", "--dir", exports); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(exports, "room_type_distribution.csv"))
	if err != nil {
		t.Fatalf("missing export: %v", err)
	}
	if !strings.HasPrefix(string(data), "room_type,count\n") {
		t.Errorf("unexpected CSV:\n%s", data)
	}

	entries, err := os.ReadDir(exports)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("exported %d files, want 1", len(entries))
	}
}

func TestExportUnknownTable(t *testing.T) {
	_, err := executeCommand("export", "occupancy")
	if !errors.Is(err, db.ErrUnknownTable) {
		t.Fatalf("err = %v, want ErrUnknownTable", err)
	}
}

func TestExportRejectsBadWorkbook(t *testing.T) {
	testEnv(t)
	if _, err := executeCommand("export", "--xlsx", "views.csv"); err == nil {
		t.Fatal("expected validation error for non-xlsx workbook path")
	}
}

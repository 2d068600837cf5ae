package db

import (
	"fmt"
	"strings"

	"github.com/j-veylop/hotel-booking-tui/internal/models"
)

type column struct {
	name    string
	sqlType string
}

// tableSchema describes one view table and its natural key.
type tableSchema struct {
	name    string
	columns []column
	key     []string
}

var schemas = []tableSchema{
	{
		name:    string(models.ViewMeanNights),
		columns: []column{{"hotel", "TEXT"}, {"mean_nights", "NUMERIC"}},
		key:     []string{"hotel"},
	},
	{
		name:    string(models.ViewCancelPercentage),
		columns: []column{{"hotel", "TEXT"}, {"cancel_percentage", "NUMERIC"}},
		key:     []string{"hotel"},
	},
	{
		name:    string(models.ViewMonthlySeasonal),
		columns: []column{{"month", "DATE"}, {"season", "TEXT"}, {"bookings", "INTEGER"}},
		key:     []string{"month", "season"},
	},
	{
		name:    string(models.ViewRoomTypes),
		columns: []column{{"room_type", "TEXT"}, {"count", "INTEGER"}},
		key:     []string{"room_type"},
	},
	{
		name:    string(models.ViewTravelerTypes),
		columns: []column{{"traveler_type", "TEXT"}, {"count", "INTEGER"}},
		key:     []string{"traveler_type"},
	},
	{
		name:    string(models.ViewTrends),
		columns: []column{{"hotel", "TEXT"}, {"date", "DATE"}, {"bookings", "INTEGER"}, {"cancellations", "INTEGER"}},
		key:     []string{"hotel", "date"},
	},
}

// TableNames lists the view tables in trigger order.
func TableNames() []string {
	names := make([]string, len(schemas))
	for i, s := range schemas {
		names[i] = s.name
	}
	return names
}

// Columns returns the column names of a view table.
func Columns(table string) ([]string, error) {
	s, err := schemaFor(table)
	if err != nil {
		return nil, err
	}
	return s.columnNames(), nil
}

func schemaFor(table string) (tableSchema, error) {
	for _, s := range schemas {
		if s.name == table {
			return s, nil
		}
	}
	return tableSchema{}, fmt.Errorf("%w: %q", ErrUnknownTable, table)
}

func (s tableSchema) columnNames() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.name
	}
	return names
}

func (s tableSchema) createSQL() string {
	defs := make([]string, len(s.columns))
	for i, c := range s.columns {
		defs[i] = fmt.Sprintf("%s %s NOT NULL", c.name, c.sqlType)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t\t%s\n\t)", s.name, strings.Join(defs, ",\n\t\t"))
}

func (s tableSchema) keyIndexSQL() string {
	return fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_key ON %s (%s)",
		s.name, s.name, strings.Join(s.key, ", "))
}

func (s tableSchema) upsertSQL(d dialect) string {
	cols := s.columnNames()
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = d.placeholder(i + 1)
	}

	keys := make(map[string]bool, len(s.key))
	for _, k := range s.key {
		keys[k] = true
	}
	var updates []string
	for _, c := range cols {
		if !keys[c] {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", c, c))
		}
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		s.name,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(s.key, ", "),
		strings.Join(updates, ", "),
	)
}

func (s tableSchema) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(s.columnNames(), ", "), s.name, strings.Join(s.key, ", "))
}

// Rows maps a view to the rows of its table, one per aggregate entry.
func Rows(view models.ViewData) (string, [][]any, error) {
	var rows [][]any

	switch v := view.(type) {
	case models.MeanNightsPerHotel:
		for _, e := range v.Values {
			rows = append(rows, []any{e.Category, e.Value})
		}
	case models.CancelPercentagePerHotel:
		for _, e := range v.Values {
			rows = append(rows, []any{e.Category, e.Value})
		}
	case models.MonthlySeasonalBookings:
		for _, r := range v.Rows {
			month := r.Month.Format(DateLayout)
			for _, season := range models.Seasons {
				rows = append(rows, []any{month, string(season), r.Counts[season]})
			}
		}
	case models.RoomTypeDistribution:
		for _, c := range v.Counts {
			rows = append(rows, []any{c.Category, c.Count})
		}
	case models.TravelerTypeBookings:
		for _, c := range v.Counts {
			rows = append(rows, []any{c.Category, c.Count})
		}
	case models.TrendsOverTime:
		for _, h := range v.Hotels {
			for i, m := range v.Months {
				rows = append(rows, []any{h.Hotel, m.Format(DateLayout), h.Bookings[i], h.Cancellations[i]})
			}
		}
	default:
		return "", nil, fmt.Errorf("%w: no table for view %T", ErrUnknownTable, view)
	}

	return string(view.View()), rows, nil
}

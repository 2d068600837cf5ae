// Package pipeline builds the immutable view state of one booking dataset.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/j-veylop/hotel-booking-tui/internal/aggregate"
	"github.com/j-veylop/hotel-booking-tui/internal/classify"
	"github.com/j-veylop/hotel-booking-tui/internal/db"
	"github.com/j-veylop/hotel-booking-tui/internal/ingest"
	"github.com/j-veylop/hotel-booking-tui/internal/logger"
	"github.com/j-veylop/hotel-booking-tui/internal/models"
	"github.com/j-veylop/hotel-booking-tui/internal/views"
)

// ViewStore persists aggregate views. *db.DB implements it.
type ViewStore interface {
	Store(ctx context.Context, view models.ViewData) (db.StoreReport, error)
}

// Pipeline holds the enriched records of one dataset and the views computed
// from them. A Pipeline never changes after New returns, so it can be shared
// by the display loop and background persistence without locking.
type Pipeline struct {
	id       string
	source   string
	records  []models.BookingRecord
	registry *views.Registry
	summary  models.DatasetSummary
}

// Load reads, classifies and aggregates the bookings file at path.
func Load(path string) (*Pipeline, error) {
	start := time.Now()

	bookings, err := ingest.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	p, err := New(bookings)
	if err != nil {
		return nil, err
	}
	p.source = path
	p.summary.Source = path
	p.summary.LoadDuration = time.Since(start)

	logger.Info("Loaded bookings", "path", path, "records", len(p.records), "run_id", p.id, "duration", p.summary.LoadDuration)
	return p, nil
}

// New classifies bookings and computes every view.
func New(bookings []models.Booking) (*Pipeline, error) {
	records, err := classify.Enrich(bookings)
	if err != nil {
		return nil, fmt.Errorf("failed to classify bookings: %w", err)
	}

	p := &Pipeline{
		id:       uuid.NewString(),
		records:  records,
		registry: views.NewRegistry(aggregate.Compute(records)),
	}
	p.summary = summarize(p.id, records)
	return p, nil
}

// ID returns the run identifier of this pipeline.
func (p *Pipeline) ID() string {
	return p.id
}

// Source returns the path the records were loaded from, if any.
func (p *Pipeline) Source() string {
	return p.source
}

// Records returns the enriched records. Callers must not modify them.
func (p *Pipeline) Records() []models.BookingRecord {
	return p.records
}

// Registry returns the view registry.
func (p *Pipeline) Registry() *views.Registry {
	return p.registry
}

// GetView returns a view and its chart metadata.
func (p *Pipeline) GetView(name models.ViewName) (views.View, error) {
	return p.registry.Get(name)
}

// Summary returns facts about the loaded dataset.
func (p *Pipeline) Summary() models.DatasetSummary {
	s := p.summary
	s.Hotels = append([]string(nil), p.summary.Hotels...)
	return s
}

// StoreViews persists every view in trigger order. The first failure stops
// the remaining views and is returned with the reports collected so far.
func (p *Pipeline) StoreViews(ctx context.Context, store ViewStore) ([]db.StoreReport, error) {
	reports := make([]db.StoreReport, 0, len(models.ViewNames))
	for _, v := range p.registry.All() {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		report, err := store.Store(ctx, v.Data)
		if err != nil {
			logger.Error("Failed to store view", "view", v.Meta.Name, "error", err)
			return reports, fmt.Errorf("failed to store %s: %w", v.Meta.Name, err)
		}
		reports = append(reports, report)
	}

	logger.Info("Stored all views", "run_id", p.id, "tables", len(reports))
	return reports, nil
}

func summarize(id string, records []models.BookingRecord) models.DatasetSummary {
	s := models.DatasetSummary{
		RunID:    id,
		Records:  len(records),
		LoadedAt: time.Now(),
	}

	hotels := make(map[string]bool)
	for i := range records {
		r := &records[i]
		hotels[r.Hotel] = true
		if r.IsCanceled {
			s.Canceled++
		}
		if s.FirstArrival.IsZero() || r.ArrivalDate.Before(s.FirstArrival) {
			s.FirstArrival = r.ArrivalDate
		}
		if r.ArrivalDate.After(s.LastArrival) {
			s.LastArrival = r.ArrivalDate
		}
	}

	s.Hotels = make([]string, 0, len(hotels))
	for h := range hotels {
		s.Hotels = append(s.Hotels, h)
	}
	sort.Strings(s.Hotels)
	return s
}

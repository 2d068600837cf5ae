// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/hotel-booking-tui/internal/config"
	"github.com/j-veylop/hotel-booking-tui/internal/db"
	"github.com/j-veylop/hotel-booking-tui/internal/exporter"
	"github.com/j-veylop/hotel-booking-tui/internal/logger"
	"github.com/j-veylop/hotel-booking-tui/internal/pipeline"
)

type (
	// PersistStartedEvent is emitted when a persistence run begins.
	PersistStartedEvent struct {
		RunID string
	}

	// PersistCompletedEvent is emitted when every view has been stored.
	PersistCompletedEvent struct {
		RunID    string
		Reports  []db.StoreReport
		Duration time.Duration
	}

	// ExportCompletedEvent is emitted after tables were written to disk.
	ExportCompletedEvent struct {
		Results  []exporter.Result
		Workbook string
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (PersistStartedEvent) isServiceEvent()   {}
func (PersistCompletedEvent) isServiceEvent() {}
func (ExportCompletedEvent) isServiceEvent()  {}
func (ErrorEvent) isServiceEvent()            {}

// ErrBusy is returned when a persistence run is already in progress.
var ErrBusy = errors.New("persistence already running")

// Manager owns the pipeline, the store session and the exporters, and routes
// their outcomes to subscribers.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	pipeline    *pipeline.Pipeline
	subscribers []chan<- ServiceEvent

	storeMu  sync.Mutex
	database *db.DB

	persistMu  sync.Mutex
	persisting bool

	notify func(title, message string) error
}

// NewManager creates a new service manager for a loaded pipeline. The store
// is opened on first use.
func NewManager(cfg *config.Config, p *pipeline.Pipeline) *Manager {
	return &Manager{
		cfg:      cfg,
		pipeline: p,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Pipeline returns the loaded pipeline.
func (m *Manager) Pipeline() *pipeline.Pipeline {
	return m.pipeline
}

// Database returns the store session, opening it if needed.
func (m *Manager) Database(ctx context.Context) (*db.DB, error) {
	m.storeMu.Lock()
	defer m.storeMu.Unlock()

	if m.database != nil {
		return m.database, nil
	}

	database, err := db.Open(ctx, db.Driver(m.cfg.StoreDriver), m.cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	m.database = database
	return database, nil
}

// Persist stores every view of the pipeline. The outcome is also broadcast
// so that the UI learns about runs it did not start.
func (m *Manager) Persist(ctx context.Context) ([]db.StoreReport, error) {
	m.persistMu.Lock()
	if m.persisting {
		m.persistMu.Unlock()
		return nil, ErrBusy
	}
	m.persisting = true
	m.persistMu.Unlock()

	defer func() {
		m.persistMu.Lock()
		m.persisting = false
		m.persistMu.Unlock()
	}()

	start := time.Now()
	m.broadcast(PersistStartedEvent{RunID: m.pipeline.ID()})

	database, err := m.Database(ctx)
	if err != nil {
		m.fail("store", err)
		return nil, err
	}

	reports, err := m.pipeline.StoreViews(ctx, database)
	if err != nil {
		m.fail("store", err)
		return reports, err
	}

	event := PersistCompletedEvent{
		RunID:    m.pipeline.ID(),
		Reports:  reports,
		Duration: time.Since(start),
	}
	m.broadcast(event)
	m.desktopNotify("Views persisted", fmt.Sprintf("%d tables stored in %s", len(reports), event.Duration.Round(time.Millisecond)))
	return reports, nil
}

// Export writes tables to the configured export directory, and to the
// configured workbook when one is set. No tables means all tables.
func (m *Manager) Export(ctx context.Context, tables []string) ([]exporter.Result, error) {
	database, err := m.Database(ctx)
	if err != nil {
		m.fail("export", err)
		return nil, err
	}

	results, err := exporter.ExportCSV(ctx, database, m.cfg.ExportDir, tables)
	if err != nil {
		m.fail("export", err)
		return results, err
	}

	if m.cfg.ExportWorkbook != "" {
		if _, err := exporter.ExportWorkbook(ctx, database, m.cfg.ExportWorkbook, tables); err != nil {
			m.fail("export", err)
			return results, err
		}
	}

	m.broadcast(ExportCompletedEvent{Results: results, Workbook: m.cfg.ExportWorkbook})
	m.desktopNotify("Tables exported", fmt.Sprintf("%d tables written to %s", len(results), m.cfg.ExportDir))
	return results, nil
}

// Table reads the committed rows of one view table.
func (m *Manager) Table(ctx context.Context, name string) (*db.Table, error) {
	database, err := m.Database(ctx)
	if err != nil {
		return nil, err
	}
	return database.Export(ctx, name)
}

func (m *Manager) fail(service string, err error) {
	logger.Error("Service operation failed", "service", service, "error", err)
	m.broadcast(ErrorEvent{Service: service, Error: err})
}

func (m *Manager) desktopNotify(title, message string) {
	if m.cfg == nil || !m.cfg.DesktopNotify || m.notify == nil {
		return
	}
	if err := m.notify(title, message); err != nil {
		logger.Debug("Desktop notification failed", "error", err)
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close closes subscriber channels and the store session.
func (m *Manager) Close() error {
	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	m.storeMu.Lock()
	defer m.storeMu.Unlock()
	if m.database != nil {
		err := m.database.Close()
		m.database = nil
		return err
	}
	return nil
}

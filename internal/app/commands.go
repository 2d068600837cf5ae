package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hotel-booking-tui/internal/models"
	"github.com/j-veylop/hotel-booking-tui/internal/services"
	"github.com/j-veylop/hotel-booking-tui/internal/views"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// ViewSource resolves view names to renderable views.
type ViewSource interface {
	GetView(name models.ViewName) (views.View, error)
}

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadSummaryCmd returns a command that reads the dataset summary.
func loadSummaryCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return SummaryLoadedMsg{Summary: mgr.Pipeline().Summary()}
	}
}

// renderViewCmd returns a command that looks a view up for drawing.
func renderViewCmd(src ViewSource, name models.ViewName) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			return ViewErrorMsg{Name: name, Error: views.ErrUnknownView}
		}
		v, err := src.GetView(name)
		if err != nil {
			return ViewErrorMsg{Name: name, Error: err}
		}
		return ViewRenderedMsg{View: v}
	}
}

// persistCmd returns a command that stores every view. Success and failure
// are reported through service events; only a rejected request is answered
// directly.
func persistCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		if _, err := mgr.Persist(context.Background()); errors.Is(err, services.ErrBusy) {
			return AddNotificationMsg{
				Type:     NotificationWarning,
				Message:  "Views are already being persisted",
				Duration: QuickNotificationDuration,
			}
		}
		return StopLoadingMsg{Resource: ResourcePersist}
	}
}

// exportCmd returns a command that exports tables to disk.
func exportCmd(mgr *services.Manager, tables []string) tea.Cmd {
	return func() tea.Msg {
		_, _ = mgr.Export(context.Background(), tables)
		return StopLoadingMsg{Resource: ResourceExport}
	}
}

// loadTableCmd returns a command that reads a table back from the store.
func loadTableCmd(mgr *services.Manager, name string) tea.Cmd {
	return func() tea.Msg {
		table, err := mgr.Table(context.Background(), name)
		return TableLoadedMsg{Name: name, Table: table, Error: err}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(t NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: d}
	}
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// RenderView returns a command that resolves a view for the chart area.
func (c *Commands) RenderView(name models.ViewName) tea.Cmd {
	var src ViewSource
	if c.manager != nil && c.manager.Pipeline() != nil {
		src = c.manager.Pipeline()
	}
	return renderViewCmd(src, name)
}

// Persist returns a command that stores every view, or nil without services.
func (c *Commands) Persist() tea.Cmd {
	if c.manager == nil {
		return nil
	}
	return persistCmd(c.manager)
}

// Export returns a command that exports tables, or nil without services.
func (c *Commands) Export(tables []string) tea.Cmd {
	if c.manager == nil {
		return nil
	}
	return exportCmd(c.manager, tables)
}

// LoadTable returns a command that reads a store table, or nil without services.
func (c *Commands) LoadTable(name string) tea.Cmd {
	if c.manager == nil {
		return nil
	}
	return loadTableCmd(c.manager, name)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}

// Quit returns a command that quits the application.
func (c *Commands) Quit() tea.Cmd {
	return tea.Quit
}

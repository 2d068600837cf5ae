package app

import (
	"time"

	"github.com/j-veylop/hotel-booking-tui/internal/db"
	"github.com/j-veylop/hotel-booking-tui/internal/models"
	"github.com/j-veylop/hotel-booking-tui/internal/services"
	"github.com/j-veylop/hotel-booking-tui/internal/views"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// SummaryLoadedMsg carries the summary of the loaded dataset.
type SummaryLoadedMsg struct {
	Summary models.DatasetSummary
}

// RenderViewMsg requests rendering a view into the chart area.
type RenderViewMsg struct {
	Name models.ViewName
}

// ViewRenderedMsg carries a view that is ready to be drawn.
type ViewRenderedMsg struct {
	View views.View
}

// ViewErrorMsg reports a failed view request. The previous chart stays.
type ViewErrorMsg struct {
	Name  models.ViewName
	Error error
}

// PersistMsg requests storing every view.
type PersistMsg struct{}

// ExportMsg requests exporting tables. No tables means all tables.
type ExportMsg struct {
	Tables []string
}

// LoadTableMsg requests reading a table back from the store.
type LoadTableMsg struct {
	Name string
}

// TableLoadedMsg contains the rows of a store table.
type TableLoadedMsg struct {
	Name  string
	Table *db.Table
	Error error
}

// RefreshMsg asks the active tab to reload what it shows.
type RefreshMsg struct{}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

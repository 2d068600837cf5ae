// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/j-veylop/hotel-booking-tui/internal/db"
	"github.com/j-veylop/hotel-booking-tui/internal/exporter"
	"github.com/j-veylop/hotel-booking-tui/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	// maxNotifications caps the toast stack.
	maxNotifications = 10
)

// Loading resources.
const (
	ResourceInitial = "initial"
	ResourcePersist = "persist"
	ResourceExport  = "export"
	ResourceTable   = "table"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial bool
	Persist bool
	Export  bool
	Table   bool
}

// State is the UI state shared between the root model, the tabs and the
// service callbacks.
type State struct {
	mu sync.RWMutex

	Summary     models.DatasetSummary
	CurrentView models.ViewName

	Reports       []db.StoreReport
	LastPersisted time.Time
	Exports       []exporter.Result
	LastExported  time.Time

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty state with the initial load pending.
func NewState() *State {
	return &State{
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case ResourceInitial:
		s.Loading.Initial = loading
	case ResourcePersist:
		s.Loading.Persist = loading
	case ResourceExport:
		s.Loading.Export = loading
	case ResourceTable:
		s.Loading.Table = loading
	}
}

// IsLoading reports whether a single resource is loading.
func (s *State) IsLoading(resource string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch resource {
	case ResourceInitial:
		return s.Loading.Initial
	case ResourcePersist:
		return s.Loading.Persist
	case ResourceExport:
		return s.Loading.Export
	case ResourceTable:
		return s.Loading.Table
	}
	return false
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.Persist ||
		s.Loading.Export ||
		s.Loading.Table
}

// GetLoadingResources returns a list of currently loading resources.
func (s *State) GetLoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resources []string
	if s.Loading.Initial {
		resources = append(resources, ResourceInitial)
	}
	if s.Loading.Persist {
		resources = append(resources, ResourcePersist)
	}
	if s.Loading.Export {
		resources = append(resources, ResourceExport)
	}
	if s.Loading.Table {
		resources = append(resources, ResourceTable)
	}
	return resources
}

// SetSummary stores the dataset summary.
func (s *State) SetSummary(summary models.DatasetSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Summary = summary
	s.LastUpdated = time.Now()
}

// GetSummary returns the dataset summary.
func (s *State) GetSummary() models.DatasetSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Summary
}

// SetCurrentView records the view shown in the chart area.
func (s *State) SetCurrentView(name models.ViewName) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CurrentView = name
}

// GetCurrentView returns the view shown in the chart area, or "" if none.
func (s *State) GetCurrentView() models.ViewName {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.CurrentView
}

// SetReports stores the outcome of a persistence run.
func (s *State) SetReports(reports []db.StoreReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reports = reports
	s.LastPersisted = time.Now()
	s.LastUpdated = s.LastPersisted
}

// GetReports returns a copy of the last persistence reports.
func (s *State) GetReports() []db.StoreReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]db.StoreReport, len(s.Reports))
	copy(reports, s.Reports)
	return reports
}

// GetLastPersisted returns when views were last persisted.
func (s *State) GetLastPersisted() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastPersisted
}

// SetExports stores the outcome of an export.
func (s *State) SetExports(results []exporter.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Exports = results
	s.LastExported = time.Now()
	s.LastUpdated = s.LastExported
}

// GetExports returns a copy of the last export results.
func (s *State) GetExports() []exporter.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]exporter.Result, len(s.Exports))
	copy(results, s.Exports)
	return results
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}

// GetLastUpdated returns the last time the state was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

package app

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hotel-booking-tui/internal/models"
	"github.com/j-veylop/hotel-booking-tui/internal/services"
	"github.com/j-veylop/hotel-booking-tui/internal/views"
)

type stubSource struct {
	view views.View
}

func (s stubSource) GetView(name models.ViewName) (views.View, error) {
	if name != s.view.Meta.Name {
		return views.View{}, views.ErrUnknownView
	}
	return s.view, nil
}

func TestCommands_Tick(t *testing.T) {
	cmds := NewCommands(nil)
	if cmd := cmds.Tick(time.Millisecond); cmd == nil {
		t.Error("Tick returned nil")
	}
}

func TestCommands_Notifications(t *testing.T) {
	cmds := NewCommands(nil)

	tests := []struct {
		name string
		fn   func(string) tea.Cmd
		want NotificationType
	}{
		{"Success", cmds.NotifySuccess, NotificationSuccess},
		{"Error", cmds.NotifyError, NotificationError},
		{"Warning", cmds.NotifyWarning, NotificationWarning},
		{"Info", cmds.NotifyInfo, NotificationInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.fn("msg")()

			addMsg, ok := msg.(AddNotificationMsg)
			if !ok {
				t.Fatalf("Expected AddNotificationMsg, got %T", msg)
			}
			if addMsg.Type != tt.want {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.want)
			}
			if addMsg.Message != "msg" {
				t.Errorf("Message = %q, want msg", addMsg.Message)
			}
			if addMsg.Duration <= 0 {
				t.Error("Notifications should expire")
			}
		})
	}
}

func TestCommands_ClearNotification(t *testing.T) {
	cmds := NewCommands(nil)
	if cmd := cmds.ClearNotification("id", time.Millisecond); cmd == nil {
		t.Error("ClearNotification returned nil")
	}
}

func TestCommands_Quit(t *testing.T) {
	cmds := NewCommands(nil)
	if _, ok := cmds.Quit()().(tea.QuitMsg); !ok {
		t.Error("Expected QuitMsg")
	}
}

func TestCommands_WithoutServices(t *testing.T) {
	cmds := NewCommands(nil)

	if cmds.Persist() != nil {
		t.Error("Persist should be nil without services")
	}
	if cmds.Export(nil) != nil {
		t.Error("Export should be nil without services")
	}
	if cmds.LoadTable("trends_over_time") != nil {
		t.Error("LoadTable should be nil without services")
	}

	msg := cmds.RenderView(models.ViewTrends)()
	errMsg, ok := msg.(ViewErrorMsg)
	if !ok {
		t.Fatalf("Expected ViewErrorMsg, got %T", msg)
	}
	if !errors.Is(errMsg.Error, views.ErrUnknownView) {
		t.Errorf("Error = %v, want ErrUnknownView", errMsg.Error)
	}
}

func TestRenderViewCmd(t *testing.T) {
	src := stubSource{view: views.View{Meta: views.Metadata{Name: models.ViewMeanNights}}}

	msg := renderViewCmd(src, models.ViewMeanNights)()
	rendered, ok := msg.(ViewRenderedMsg)
	if !ok {
		t.Fatalf("Expected ViewRenderedMsg, got %T", msg)
	}
	if rendered.View.Meta.Name != models.ViewMeanNights {
		t.Errorf("rendered %q", rendered.View.Meta.Name)
	}

	msg = renderViewCmd(src, "occupancy")()
	if errMsg, ok := msg.(ViewErrorMsg); !ok || errMsg.Name != "occupancy" {
		t.Errorf("Expected ViewErrorMsg for occupancy, got %#v", msg)
	}
}

func TestWaitForServiceEventCmd(t *testing.T) {
	ch := make(chan services.ServiceEvent, 1)
	ch <- services.PersistStartedEvent{RunID: "run"}

	msg := waitForServiceEventCmd(ch)()
	if _, ok := msg.(ServiceEventMsg); !ok {
		t.Errorf("Expected ServiceEventMsg, got %T", msg)
	}

	close(ch)
	if msg := waitForServiceEventCmd(ch)(); msg != nil {
		t.Errorf("Closed channel should yield nil, got %T", msg)
	}
}

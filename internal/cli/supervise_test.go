package cli

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestSupervise_CancelsBackgroundOnQuit(t *testing.T) {
	stopped := make(chan struct{})
	background := func(ctx context.Context) {
		<-ctx.Done()
		close(stopped)
	}

	result := make(chan error, 1)
	go func() {
		result <- supervise(context.Background(), func() error { return nil }, background)
	}()

	select {
	case err := <-result:
		if err != nil {
			t.Errorf("supervise returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("supervise kept waiting on the background task")
	}

	select {
	case <-stopped:
	default:
		t.Error("background task should have seen the cancellation")
	}
}

func TestSupervise_RunError(t *testing.T) {
	want := errors.New("terminal lost")
	if err := supervise(context.Background(), func() error { return want }, nil); !errors.Is(err, want) {
		t.Errorf("supervise = %v, want %v", err, want)
	}
}

func TestForwardSignals(t *testing.T) {
	t.Run("signal quits", func(t *testing.T) {
		sigChan := make(chan os.Signal, 1)
		quit := make(chan struct{}, 1)
		sigChan <- syscall.SIGTERM

		forwardSignals(sigChan, make(chan struct{}), func() { quit <- struct{}{} })

		select {
		case <-quit:
		default:
			t.Error("quit was not called")
		}
	})

	t.Run("done releases", func(t *testing.T) {
		done := make(chan struct{})
		returned := make(chan struct{})
		go func() {
			forwardSignals(make(chan os.Signal), done, func() { t.Error("quit called without a signal") })
			close(returned)
		}()

		close(done)
		select {
		case <-returned:
		case <-time.After(2 * time.Second):
			t.Fatal("forwardSignals did not return after done was closed")
		}
	})
}

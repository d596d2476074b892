package player

import (
	"context"
	"testing"
	"time"
)

func TestAvailabilityStartsNotReady(t *testing.T) {
	a := NewAvailability()
	if a.Ready() {
		t.Fatal("new availability reports ready")
	}
}

func TestSignalIsIdempotent(t *testing.T) {
	a := NewAvailability()
	a.Signal()
	a.Signal()
	if !a.Ready() {
		t.Fatal("signaled availability not ready")
	}
}

func TestWaitReturnsAfterSignal(t *testing.T) {
	a := NewAvailability()

	done := make(chan error, 1)
	go func() {
		done <- a.Wait(context.Background())
	}()
	a.Signal()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("wait: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("wait did not return after signal")
	}
}

func TestWaitImmediateWhenAlreadyReady(t *testing.T) {
	a := NewAvailability()
	a.Signal()
	if err := a.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	a := NewAvailability()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := a.Wait(ctx); err == nil {
		t.Fatal("wait returned nil without a signal")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateUnstarted, "unstarted"},
		{StatePlaying, "playing"},
		{StatePaused, "paused"},
		{StateEnded, "ended"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("working...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop() // must not hang or panic
}

func TestSpinnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "working...")
	s.Start()

	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancellation")
	}
	s.Stop()
}

func TestSpinnerUpdateMessage(t *testing.T) {
	s := newSpinner("a long initial message")
	s.Start()
	s.UpdateMessage("short")
	time.Sleep(50 * time.Millisecond)
	s.Stop()
}

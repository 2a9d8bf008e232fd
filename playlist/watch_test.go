// SPDX-License-Identifier: EPL-2.0

package playlist

import (
	"context"
	"slices"
	"testing"
	"time"
)

func TestStore_Watch(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan []string, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func(names []string) {
			select {
			case updates <- names:
			default:
			}
		})
	}()

	// The watcher is registered asynchronously; keep saving until it reports.
	deadline := time.After(5 * time.Second)
	saved := false
	for !saved {
		if err := s.Save("live", entries("a.wav"), true); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		select {
		case names := <-updates:
			if !slices.Contains(names, "live") {
				t.Errorf("Watch reported %v, want it to contain live", names)
			}
			saved = true
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatal("Watch did not report a change")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

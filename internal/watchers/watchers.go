package watchers

import (
	"context"
	"time"
)

// Observation is one hotkey side effect noticed by a watcher.
type Observation struct {
	At     time.Time
	Source string
	Event  string
	Data   any
}

// Emit receives observations. It is called from watcher goroutines.
type Emit func(Observation)

func observe(emit Emit, source, event string, data any) {
	emit(Observation{At: time.Now(), Source: source, Event: event, Data: data})
}

// stopContext bridges the supervisor's stop channel to a context.
func stopContext(stop <-chan struct{}) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

package manager

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestSupervisorRestartsAfterPanic(t *testing.T) {
	defer goleak.VerifyNone(t)

	var runs atomic.Int32
	started := make(chan struct{}, 4)

	sup := NewSupervisor(zap.NewNop(), time.Millisecond)
	sup.StartWatcher("flaky", func(stop <-chan struct{}) {
		n := runs.Add(1)
		started <- struct{}{}
		if n == 1 {
			panic("first run blows up")
		}
		<-stop
	})

	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(5 * time.Second):
			t.Fatal("watcher was not restarted")
		}
	}

	sup.StopAll()
	assert.Equal(t, int32(2), runs.Load())
}

func TestSupervisorStopAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	sup := NewSupervisor(zap.NewNop(), time.Hour)
	ready := make(chan struct{}, 2)
	for _, name := range []string{"a", "b"} {
		sup.StartWatcher(name, func(stop <-chan struct{}) {
			ready <- struct{}{}
			<-stop
		})
	}
	<-ready
	<-ready

	done := make(chan struct{})
	go func() {
		sup.StopAll()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("StopAll did not return")
	}

	// a second StopAll has nothing left to stop
	sup.StopAll()
}

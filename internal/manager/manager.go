package manager

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Supervisor keeps long running watchers alive: a watcher that returns or
// panics is restarted after RestartDelay until StopAll is called.
type Supervisor struct {
	Log          *zap.Logger
	RestartDelay time.Duration

	mu    sync.Mutex
	stops []chan struct{}
	wg    sync.WaitGroup
}

func NewSupervisor(log *zap.Logger, restartDelay time.Duration) *Supervisor {
	return &Supervisor{Log: log, RestartDelay: restartDelay}
}

func (m *Supervisor) StartWatcher(name string, f func(stop <-chan struct{})) {
	stop := make(chan struct{})
	m.mu.Lock()
	m.stops = append(m.stops, stop)
	m.mu.Unlock()

	log := m.Log.With(zap.String("watcher", name))

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Error("watcher panic", zap.Any("panic", r))
					}
				}()
				f(stop)
			}()

			select {
			case <-stop:
				return
			case <-time.After(m.RestartDelay):
				log.Info("restarting watcher")
			}
		}
	}()
}

// StopAll signals every watcher and waits for them to return.
func (m *Supervisor) StopAll() {
	m.mu.Lock()
	stops := m.stops
	m.stops = nil
	m.mu.Unlock()

	for _, s := range stops {
		close(s)
	}
	m.wg.Wait()
}

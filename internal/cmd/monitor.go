package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hoppxi/hkcheck/internal/manager"
	"github.com/hoppxi/hkcheck/internal/watchers"
	"github.com/hoppxi/hkcheck/pkg/rfkillinfo"
)

func startWatchers(sup *manager.Supervisor, c *manager.Config, emit watchers.Emit) {
	sup.StartWatcher("backlight", watchers.Backlight(c.Brightness.SysfsRoot, emit))
	sup.StartWatcher("rfkill", watchers.Rfkill(rfkillinfo.Rfkill{}, emit))
	sup.StartWatcher("radio", watchers.Radio(emit))
	sup.StartWatcher("leds", watchers.LEDs(c.Monitor.PollInterval, emit, c.Keyboard.Path))
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Log hotkey side effects while real keys are pressed",
	Args:  usageArgs(cobra.NoArgs),
	Run: func(cmd *cobra.Command, args []string) {
		emit := func(o watchers.Observation) {
			logger.Info("observed",
				zap.String("source", o.Source),
				zap.String("event", o.Event),
				zap.Any("data", o.Data))
		}

		var mu sync.Mutex
		sup := manager.NewSupervisor(logger, cfg.Monitor.RestartDelay)
		startWatchers(sup, cfg, emit)

		configs.Watch(func(next *manager.Config, err error) {
			if err != nil {
				logger.Warn("config reload failed", zap.Error(err))
				return
			}
			mu.Lock()
			defer mu.Unlock()

			logger.Info("config changed, restarting watchers")
			sup.StopAll()
			sup = manager.NewSupervisor(logger, next.Monitor.RestartDelay)
			startWatchers(sup, next, emit)
		})

		fmt.Println("Monitoring hotkey events. Press Ctrl+C to stop.")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		fmt.Println("\nReceived shutdown signal, stopping watchers...")
		mu.Lock()
		sup.StopAll()
		mu.Unlock()
	},
}

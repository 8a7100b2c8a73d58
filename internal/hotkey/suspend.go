package hotkey

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hoppxi/hkcheck/pkg/kmsginfo"
	"github.com/hoppxi/hkcheck/pkg/operation"
)

// sleepStamp is the kernel log marker written just before the sleep button
// is pressed. The run id keeps it unique across runs.
func (env *Env) sleepStamp() string {
	return fmt.Sprintf("%s: %s [%s]", env.Program, kmsginfo.SleepMarker, env.RunID)
}

// SuspendButton arms an RTC wakeup, presses the ACPI sleep button and,
// once the machine is back, checks in the kernel log that a resume happened
// after the sleep request.
func SuspendButton(ctx context.Context, env *Env) error {
	cfg := env.Config.Suspend

	if cfg.Interactive && env.Prompt != nil {
		msg := fmt.Sprintf("The system will suspend and wake up after %s.", cfg.WakeupAfter)
		ok, err := env.Prompt.Confirm("Suspend button", msg)
		if err != nil {
			return err
		}
		if !ok {
			return skipf("operator skipped suspend")
		}
	}

	env.logPower()

	if err := env.Alarm.SetWakeup(ctx, cfg.WakeupAfter); err != nil {
		return err
	}

	s := operation.Suspend{
		Kmsg:   env.Kernel,
		ACPI:   env.ACPI,
		Method: cfg.Method,
		Args:   strings.Fields(cfg.Args),
		Wait:   cfg.Wait,
		Log:    env.Log,
	}
	stamp := env.sleepStamp()
	if err := s.PrepareToSleep(stamp); err != nil {
		return err
	}
	if err := s.GoToSleep(ctx); err != nil {
		return err
	}

	sleepAt, err := env.Kernel.SleepTime(ctx, stamp)
	if err != nil {
		return err
	}
	wakeAt, err := env.Kernel.WakeupTime(ctx)
	if errors.Is(err, kmsginfo.ErrNoMatch) {
		return failf("no resume in kernel log after sleep request at %.3f", sleepAt)
	}
	if err != nil {
		return err
	}

	env.Log.Debug("suspend timestamps", zap.Float64("sleep", sleepAt), zap.Float64("wakeup", wakeAt))
	if sleepAt > wakeAt {
		return failf("last resume at %.3f is before the sleep request at %.3f", wakeAt, sleepAt)
	}
	return nil
}

func (env *Env) logPower() {
	if env.Power == nil {
		return
	}
	p, err := env.Power()
	if err != nil {
		env.Log.Debug("power state unavailable", zap.Error(err))
		return
	}
	env.Log.Info("power state before suspend",
		zap.String("source", p.Source),
		zap.Int("battery_level", p.Level),
		zap.String("battery_status", p.Status))
}

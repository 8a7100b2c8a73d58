package hotkey

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hoppxi/hkcheck/pkg/backlightinfo"
	"github.com/hoppxi/hkcheck/pkg/operation"
)

// restoreLevel puts a brightness node back to the level it was opened at.
func restoreLevel(env *Env, b *backlightinfo.Brightness, what string) {
	if err := b.Restore(); err != nil {
		env.Log.Warn("restore brightness failed", zap.String("device", what), zap.Error(err))
	}
}

// BrightnessKeys moves the panel to a middle level, then fires the graphics
// BRT6 method with the brightness-up and brightness-down arguments and
// checks that sysfs follows each notification.
func BrightnessKeys(ctx context.Context, env *Env) error {
	cfg := env.Config.Brightness

	path := cfg.Device
	if path == "" {
		found, err := env.Backlights.Discover(cfg.SysfsRoot)
		if err != nil {
			return err
		}
		path = found
	}

	ctl, err := env.Backlights.Open(path)
	if err != nil {
		return err
	}
	b, err := backlightinfo.NewBrightness(ctl)
	if err != nil {
		return err
	}
	defer restoreLevel(env, b, path)

	maxLevel, err := b.MaxBrightness()
	if err != nil {
		return err
	}
	start, err := evalLevel(cfg.StartLevel, maxLevel)
	if err != nil {
		return err
	}
	if err := b.SetBrightness(start); err != nil {
		return err
	}

	method := cfg.Method
	if method == "" {
		m, err := env.Backlights.GraphicsMethod(cfg.ACPITables)
		if err != nil {
			env.Log.Warn("acpi table scan failed, using default method", zap.String("method", m), zap.Error(err))
		}
		method = m
	}
	env.Log.Debug("brightness check",
		zap.String("device", path),
		zap.String("method", method),
		zap.Int("max", maxLevel),
		zap.Int("start", start))

	steps := []struct {
		name  string
		args  string
		moved func(*backlightinfo.Brightness, int) (bool, error)
		want  string
	}{
		{"up", cfg.UpArgs, (*backlightinfo.Brightness).WasUp, "rise"},
		{"down", cfg.DownArgs, (*backlightinfo.Brightness).WasDown, "fall"},
	}

	for _, step := range steps {
		cur, err := b.Brightness()
		if err != nil {
			return err
		}

		if err := env.ACPI.Evaluate(ctx, method, strings.Fields(step.args)...); err != nil {
			env.Log.Warn("acpi evaluate failed", zap.String("method", method), zap.Error(err))
		}

		ok, err := step.moved(b, cur)
		if err != nil {
			return err
		}
		if !ok {
			now, _ := b.Brightness()
			return failf("brightness %s: level did not %s from %d (now %d)", step.name, step.want, cur, now)
		}
	}
	return nil
}

// KeyboardBacklight walks the Dell keyboard backlight through every level
// and checks each one reads back. The original level is restored whatever
// the outcome.
func KeyboardBacklight(ctx context.Context, env *Env) error {
	cfg := env.Config.Keyboard

	ctl, err := env.Backlights.Open(cfg.Path)
	if err != nil {
		return err
	}
	b, err := backlightinfo.NewBrightness(ctl)
	if err != nil {
		return err
	}
	defer restoreLevel(env, b, cfg.Path)

	if err := b.SetBrightness(0); err != nil {
		return err
	}
	maxLevel, err := b.MaxBrightness()
	if err != nil {
		return err
	}

	for bl := 0; bl <= maxLevel; bl++ {
		if err := b.SetBrightness(bl); err != nil {
			return err
		}
		if err := operation.Pause(ctx, cfg.StepDelay); err != nil {
			return err
		}

		applied, err := b.WasApplied(bl)
		if err != nil {
			return err
		}
		if !applied {
			now, _ := b.Brightness()
			return failf("keyboard backlight level %d not applied (reads %d)", bl, now)
		}
	}
	return nil
}

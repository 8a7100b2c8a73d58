package hotkey

import (
	"context"
	"errors"

	"github.com/hoppxi/hkcheck/pkg/displayinfo"
	"github.com/hoppxi/hkcheck/pkg/operation"
)

// DisplaySwitch sends the display-switch chord twice. The first switch has
// to change the set of active monitors and the second has to bring the
// original set back, which only works with an external monitor attached.
func DisplaySwitch(ctx context.Context, env *Env) error {
	cfg := env.Config.Display

	if cfg.Interactive && env.Prompt != nil {
		ok, err := env.Prompt.Confirm("Display switch", "Attach an external monitor, then continue.")
		if err != nil {
			return err
		}
		if !ok {
			return skipf("operator skipped display switch")
		}
	}

	original, err := env.Monitors.ActiveMonitors(ctx)
	if err != nil {
		return err
	}
	if len(original) == 0 {
		return errors.New("no active monitors reported by xrandr")
	}

	for press := 1; press <= 2; press++ {
		if err := env.Keys.DisplaySwitch(ctx); err != nil {
			return err
		}
		if err := operation.Pause(ctx, cfg.Settle); err != nil {
			return err
		}

		active, err := env.Monitors.ActiveMonitors(ctx)
		if err != nil {
			return err
		}

		same := displayinfo.Same(active, original)
		switch {
		case press == 1 && same:
			return failf("active monitors unchanged after display switch: %v", active)
		case press == 2 && !same:
			return failf("active monitors %v after second switch, want %v", active, original)
		}
	}
	return nil
}

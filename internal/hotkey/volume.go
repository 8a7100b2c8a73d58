package hotkey

import (
	"context"

	"go.uber.org/zap"

	"github.com/hoppxi/hkcheck/pkg/audioinfo"
	"github.com/hoppxi/hkcheck/pkg/operation"
)

// VolumeKeys taps the volume up, volume down and mute keys and checks the
// default sink after each one. Level and mute state are restored.
func VolumeKeys(ctx context.Context, env *Env) error {
	cfg := env.Config.Volume

	original, err := env.Mixer.Output()
	if err != nil {
		return err
	}
	defer func() {
		// the caller's context may already be cancelled
		rctx := context.WithoutCancel(ctx)
		if err := env.Mixer.SetLevel(rctx, original.Level); err != nil {
			env.Log.Warn("restore volume failed", zap.Error(err))
		}
		if err := env.Mixer.SetMute(rctx, original.Muted); err != nil {
			env.Log.Warn("restore mute failed", zap.Error(err))
		}
	}()

	if err := env.Mixer.SetMute(ctx, false); err != nil {
		return err
	}
	if err := env.Mixer.SetLevel(ctx, cfg.StartLevel); err != nil {
		return err
	}

	tap := func(key int) (audioinfo.AudioDevice, error) {
		if err := env.Keys.Tap(ctx, key); err != nil {
			return audioinfo.AudioDevice{}, err
		}
		if err := operation.Pause(ctx, cfg.Settle); err != nil {
			return audioinfo.AudioDevice{}, err
		}
		return env.Mixer.Output()
	}

	before, err := env.Mixer.Output()
	if err != nil {
		return err
	}

	after, err := tap(operation.KeyVolumeUp)
	if err != nil {
		return err
	}
	if after.Level <= before.Level {
		return failf("volume up: level did not rise from %d%% (now %d%%)", before.Level, after.Level)
	}

	before = after
	after, err = tap(operation.KeyVolumeDown)
	if err != nil {
		return err
	}
	if after.Level >= before.Level {
		return failf("volume down: level did not fall from %d%% (now %d%%)", before.Level, after.Level)
	}

	for _, want := range []bool{true, false} {
		after, err = tap(operation.KeyMute)
		if err != nil {
			return err
		}
		if after.Muted != want {
			return failf("mute key: sink muted=%t, want %t", after.Muted, want)
		}
	}
	return nil
}

package operation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// audio drives the default PulseAudio sink through pactl.
type audio struct{}

// Audio is the exported instance.
var Audio audio

func (a *audio) SetOutputLevel(ctx context.Context, lvl int) error {
	if lvl < 0 {
		lvl = 0
	}
	if lvl > 100 {
		lvl = 100
	}

	device, err := defaultSink(ctx)
	if err != nil {
		return err
	}

	volArg := strconv.Itoa(lvl) + "%"
	if err := execCommand(ctx, "pactl", "set-sink-volume", device, volArg).Run(); err != nil {
		return fmt.Errorf("failed to set volume: %w", err)
	}
	return nil
}

func (a *audio) SetOutputMute(ctx context.Context, mute bool) error {
	device, err := defaultSink(ctx)
	if err != nil {
		return err
	}

	muteArg := "0"
	if mute {
		muteArg = "1"
	}

	if err := execCommand(ctx, "pactl", "set-sink-mute", device, muteArg).Run(); err != nil {
		return fmt.Errorf("failed to set mute: %w", err)
	}
	return nil
}

func defaultSink(ctx context.Context) (string, error) {
	out, err := execCommand(ctx, "pactl", "get-default-sink").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get default sink: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

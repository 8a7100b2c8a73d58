package hotkey

import (
	"context"

	"go.uber.org/zap"

	"github.com/hoppxi/hkcheck/pkg/rfkillinfo"
)

func stateName(s int) string {
	if s == rfkillinfo.On {
		return "unblocked"
	}
	return "soft blocked"
}

// AirplaneMode fires the radio button method of the Intel HID device twice.
// Every configured radio must flip its soft block state each time, so the
// second press also puts the machine back the way it was.
func AirplaneMode(ctx context.Context, env *Env) error {
	cfg := env.Config.Airplane
	if len(cfg.Radios) == 0 {
		return skipf("no radios configured")
	}

	radios := make([]*rfkillinfo.Wireless, 0, len(cfg.Radios))
	for _, name := range cfg.Radios {
		radios = append(radios, rfkillinfo.NewWireless(name, env.Radios))
	}

	for round := 1; round <= 2; round++ {
		before := make([]int, len(radios))
		for i, w := range radios {
			s, err := w.State(ctx)
			if err != nil {
				return err
			}
			before[i] = s
		}

		if err := env.ACPI.Evaluate(ctx, cfg.Method); err != nil {
			env.Log.Warn("acpi evaluate failed", zap.String("method", cfg.Method), zap.Error(err))
		}

		for i, w := range radios {
			toggled, err := w.WasToggled(ctx, before[i])
			if err != nil {
				return err
			}
			if !toggled {
				return failf("press %d: %s stayed %s", round, w.Name, stateName(before[i]))
			}
		}

		env.logRadioStatus(round)
	}
	return nil
}

// logRadioStatus records what the desktop services saw, for triage only.
func (env *Env) logRadioStatus(round int) {
	if env.RadioStatus == nil {
		return
	}
	info, err := env.RadioStatus()
	if err != nil {
		env.Log.Debug("radio status unavailable", zap.Error(err))
		return
	}
	fields := []zap.Field{zap.Int("press", round)}
	if info.WirelessEnabled != nil {
		fields = append(fields, zap.Bool("nm_wireless_enabled", *info.WirelessEnabled))
	}
	if info.BluetoothPowered != nil {
		fields = append(fields, zap.Bool("bluez_powered", *info.BluetoothPowered))
	}
	env.Log.Debug("radio status", fields...)
}

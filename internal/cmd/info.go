package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hoppxi/hkcheck/pkg/audioinfo"
	"github.com/hoppxi/hkcheck/pkg/backlightinfo"
	"github.com/hoppxi/hkcheck/pkg/batteryinfo"
	"github.com/hoppxi/hkcheck/pkg/displayinfo"
	"github.com/hoppxi/hkcheck/pkg/miscinfo"
	"github.com/hoppxi/hkcheck/pkg/netinfo"
	"github.com/hoppxi/hkcheck/pkg/rfkillinfo"
)

type infoError struct {
	Error string `json:"error"`
}

// orError keeps a failed reader visible in the output instead of aborting.
func orError(v any, err error) any {
	if err != nil {
		return infoError{Error: err.Error()}
	}
	return v
}

var infoSections = []string{
	"audio", "backlight", "keyboard_backlight", "monitors", "power", "radios", "rfkill", "system",
}

func panelPath() (string, error) {
	if cfg.Brightness.Device != "" {
		return cfg.Brightness.Device, nil
	}
	return backlightinfo.Discover(cfg.Brightness.SysfsRoot)
}

// sectionJSON renders a single section the way the individual info readers
// format it.
func sectionJSON(ctx context.Context, section string) ([]byte, error) {
	switch section {
	case "audio":
		return audioinfo.GetOutputJSON()
	case "backlight":
		path, err := panelPath()
		if err != nil {
			return nil, err
		}
		return backlightinfo.GetBacklightInfoJSON(path)
	case "keyboard_backlight":
		return backlightinfo.GetBacklightInfoJSON(cfg.Keyboard.Path)
	case "monitors":
		return displayinfo.GetDisplayInfoJSON(ctx, cfg.Display.Xrandr)
	case "power":
		return batteryinfo.GetPowerInfoJSON()
	case "radios":
		return netinfo.GetRadioInfoJSON()
	case "rfkill":
		return rfkillinfo.GetRfkillInfoJSON(ctx)
	case "system":
		return miscinfo.GetSystemJSON()
	}
	return nil, fmt.Errorf("unknown section %q (one of %s)", section, strings.Join(infoSections, ", "))
}

// allSections reads everything in parallel. A failing reader shows up as an
// error entry.
func allSections(ctx context.Context) map[string]any {
	state := map[string]any{}
	var mu sync.Mutex
	set := func(key string, v any) {
		mu.Lock()
		state[key] = v
		mu.Unlock()
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		set("rfkill", orError(rfkillinfo.Rfkill{}.List(egCtx)))
		return nil
	})
	eg.Go(func() error {
		if path, err := panelPath(); err != nil {
			set("backlight", infoError{Error: err.Error()})
		} else {
			set("backlight", orError(backlightinfo.GetBacklightInfo(path)))
		}
		set("keyboard_backlight", orError(backlightinfo.GetBacklightInfo(cfg.Keyboard.Path)))
		return nil
	})
	eg.Go(func() error {
		set("monitors", orError(displayinfo.GetDisplayInfo(egCtx, cfg.Display.Xrandr)))
		return nil
	})
	eg.Go(func() error {
		set("audio", orError(audioinfo.GetOutput()))
		return nil
	})
	eg.Go(func() error {
		set("radios", orError(netinfo.GetRadioInfo()))
		return nil
	})
	eg.Go(func() error {
		set("power", orError(batteryinfo.GetPowerInfo("")))
		set("system", miscinfo.GetSystem())
		return nil
	})

	_ = eg.Wait()
	return state
}

var infoCmd = &cobra.Command{
	Use:       "info [section]",
	Short:     "Print the state the checks observe, in json format",
	Args:      usageArgs(cobra.MaximumNArgs(1)),
	ValidArgs: infoSections,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if len(args) == 1 {
			if !slices.Contains(infoSections, args[0]) {
				return &exitError{code: 2, err: fmt.Errorf("unknown section %q", args[0])}
			}
			out, err := sectionJSON(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		out, err := json.MarshalIndent(allSections(ctx), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

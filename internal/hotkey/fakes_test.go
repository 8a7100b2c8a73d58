package hotkey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hoppxi/hkcheck/internal/manager"
	"github.com/hoppxi/hkcheck/pkg/audioinfo"
	"github.com/hoppxi/hkcheck/pkg/backlightinfo"
	"github.com/hoppxi/hkcheck/pkg/kmsginfo"
	"github.com/hoppxi/hkcheck/pkg/netinfo"
)

type acpiCall struct {
	Method string
	Args   string
}

type fakeACPI struct {
	calls []acpiCall
	err   error
	// on runs for every evaluation and stands in for the firmware.
	on func(method string, args []string)
}

func (f *fakeACPI) Evaluate(ctx context.Context, method string, args ...string) error {
	f.calls = append(f.calls, acpiCall{Method: method, Args: strings.Join(args, " ")})
	if f.on != nil {
		f.on(method, args)
	}
	return f.err
}

type fakeRadios struct {
	unblocked map[string]bool
	err       error
}

func (f *fakeRadios) SoftUnblocked(ctx context.Context, name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	v, ok := f.unblocked[name]
	if !ok {
		return false, fmt.Errorf("no radio %q", name)
	}
	return v, nil
}

type fakePanel struct {
	level  int
	max    int
	writes []int
	// limit caps what the hardware accepts; writes above it read back as
	// the limit.
	limit int
}

func (p *fakePanel) Brightness() (int, error)    { return p.level, nil }
func (p *fakePanel) MaxBrightness() (int, error) { return p.max, nil }

func (p *fakePanel) SetBrightness(v int) error {
	p.writes = append(p.writes, v)
	if p.limit > 0 && v > p.limit {
		v = p.limit
	}
	p.level = v
	return nil
}

type fakeBacklights struct {
	panels      map[string]*fakePanel
	discovered  string
	discoverErr error
	method      string
	methodErr   error
	methodCalls int
}

func (f *fakeBacklights) Discover(root string) (string, error) {
	return f.discovered, f.discoverErr
}

func (f *fakeBacklights) Open(path string) (backlightinfo.Control, error) {
	p, ok := f.panels[path]
	if !ok {
		return nil, fmt.Errorf("open backlight %s: not found", path)
	}
	return p, nil
}

func (f *fakeBacklights) GraphicsMethod(tablesDir string) (string, error) {
	f.methodCalls++
	return f.method, f.methodErr
}

// fakeDisplay cycles through monitor layouts, one step per display switch.
type fakeDisplay struct {
	layouts  [][]string
	cur      int
	switches int
	taps     []int
	onTap    func(key int)
	err      error
}

func (f *fakeDisplay) ActiveMonitors(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.layouts[f.cur], nil
}

func (f *fakeDisplay) DisplaySwitch(ctx context.Context) error {
	f.switches++
	f.cur = (f.cur + 1) % len(f.layouts)
	return nil
}

func (f *fakeDisplay) Tap(ctx context.Context, key int) error {
	f.taps = append(f.taps, key)
	if f.onTap != nil {
		f.onTap(key)
	}
	return nil
}

type fakeKernel struct {
	written    []string
	timestamps map[string]float64
	writeErr   error
}

func (f *fakeKernel) Write(msg string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, msg)
	return nil
}

func (f *fakeKernel) SleepTime(ctx context.Context, stamp string) (float64, error) {
	if stamp == "" {
		stamp = kmsginfo.SleepMarker
	}
	return f.lookup(stamp)
}

func (f *fakeKernel) WakeupTime(ctx context.Context) (float64, error) {
	return f.lookup(kmsginfo.WakeupMarker)
}

func (f *fakeKernel) lookup(pattern string) (float64, error) {
	ts, ok := f.timestamps[pattern]
	if !ok {
		return 0, fmt.Errorf("%w: %q", kmsginfo.ErrNoMatch, pattern)
	}
	return ts, nil
}

type fakeAlarm struct {
	armed []time.Duration
	err   error
}

func (f *fakeAlarm) SetWakeup(ctx context.Context, d time.Duration) error {
	f.armed = append(f.armed, d)
	return f.err
}

type fakeMixer struct {
	dev audioinfo.AudioDevice
	err error
}

func (f *fakeMixer) Output() (audioinfo.AudioDevice, error) {
	return f.dev, f.err
}

func (f *fakeMixer) SetLevel(ctx context.Context, pct int) error {
	f.dev.Level = pct
	return nil
}

func (f *fakeMixer) SetMute(ctx context.Context, mute bool) error {
	f.dev.Muted = mute
	return nil
}

type fakePrompt struct {
	answer bool
	err    error
	asked  []string
}

func (f *fakePrompt) Confirm(title, text string) (bool, error) {
	f.asked = append(f.asked, title)
	return f.answer, f.err
}

type fakeIdle struct {
	inhibited   int
	uninhibited int
	err         error
}

func (f *fakeIdle) Inhibit(app, reason string) error {
	if f.err != nil {
		return f.err
	}
	f.inhibited++
	return nil
}

func (f *fakeIdle) UnInhibit() error {
	f.uninhibited++
	return nil
}

// testConfig mirrors the shipped defaults with every wait set to zero.
func testConfig() *manager.Config {
	return &manager.Config{
		Airplane: manager.AirplaneConfig{
			Method: "_SB.HIDD.NRBT",
			Radios: []string{"wlan", "bluetooth"},
		},
		Brightness: manager.BrightnessConfig{
			SysfsRoot:  "/sys/class/backlight",
			StartLevel: "max / 2",
			UpArgs:     "1 0",
			DownArgs:   "2 0",
		},
		Keyboard: manager.KeyboardConfig{
			Path: "/sys/class/leds/dell::kbd_backlight",
		},
		Suspend: manager.SuspendConfig{
			Method:      "_SB.BTNV",
			Args:        "2 0",
			WakeupAfter: time.Minute,
		},
		Volume: manager.VolumeConfig{StartLevel: 50},
	}
}

type testEnv struct {
	*Env
	acpi       *fakeACPI
	radios     *fakeRadios
	backlights *fakeBacklights
	display    *fakeDisplay
	kernel     *fakeKernel
	alarm      *fakeAlarm
	mixer      *fakeMixer
	prompt     *fakePrompt
	idle       *fakeIdle
}

func newTestEnv() *testEnv {
	te := &testEnv{
		acpi:       &fakeACPI{},
		radios:     &fakeRadios{unblocked: map[string]bool{"wlan": true, "bluetooth": true}},
		backlights: &fakeBacklights{panels: map[string]*fakePanel{}},
		display:    &fakeDisplay{layouts: [][]string{{"eDP-1"}}},
		kernel:     &fakeKernel{timestamps: map[string]float64{}},
		alarm:      &fakeAlarm{},
		mixer:      &fakeMixer{},
		prompt:     &fakePrompt{answer: true},
		idle:       &fakeIdle{},
	}
	te.Env = &Env{
		Config:  testConfig(),
		Log:     zap.NewNop(),
		RunID:   "2f1c7a52-1111-4c1e-9a5e-0123456789ab",
		Program: "hkcheck",

		ACPI:       te.acpi,
		Radios:     te.radios,
		Backlights: te.backlights,
		Monitors:   te.display,
		Keys:       te.display,
		Kernel:     te.kernel,
		Alarm:      te.alarm,
		Mixer:      te.mixer,
		Prompt:     te.prompt,
		Idle:       te.idle,
		RadioStatus: func() (*netinfo.RadioInfo, error) {
			return nil, errors.New("no system bus")
		},
	}
	return te
}

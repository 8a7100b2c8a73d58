package hotkey

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hoppxi/hkcheck/internal/manager"
	"github.com/hoppxi/hkcheck/pkg/acpiinfo"
	"github.com/hoppxi/hkcheck/pkg/audioinfo"
	"github.com/hoppxi/hkcheck/pkg/backlightinfo"
	"github.com/hoppxi/hkcheck/pkg/batteryinfo"
	"github.com/hoppxi/hkcheck/pkg/displayinfo"
	"github.com/hoppxi/hkcheck/pkg/kmsginfo"
	"github.com/hoppxi/hkcheck/pkg/netinfo"
	"github.com/hoppxi/hkcheck/pkg/operation"
	"github.com/hoppxi/hkcheck/pkg/rfkillinfo"
)

type Evaluator interface {
	Evaluate(ctx context.Context, method string, args ...string) error
}

// Backlights finds brightness nodes and the firmware method behind the
// panel brightness keys.
type Backlights interface {
	Discover(root string) (string, error)
	Open(path string) (backlightinfo.Control, error)
	GraphicsMethod(tablesDir string) (string, error)
}

type MonitorReader interface {
	ActiveMonitors(ctx context.Context) ([]string, error)
}

type KeySender interface {
	DisplaySwitch(ctx context.Context) error
	Tap(ctx context.Context, key int) error
}

type KernelLog interface {
	Write(msg string) error
	SleepTime(ctx context.Context, stamp string) (float64, error)
	WakeupTime(ctx context.Context) (float64, error)
}

type Alarm interface {
	SetWakeup(ctx context.Context, d time.Duration) error
}

type Mixer interface {
	Output() (audioinfo.AudioDevice, error)
	SetLevel(ctx context.Context, pct int) error
	SetMute(ctx context.Context, mute bool) error
}

type Prompter interface {
	Confirm(title, text string) (bool, error)
}

type IdleInhibitor interface {
	Inhibit(app, reason string) error
	UnInhibit() error
}

// Env is everything a check touches. NewEnv wires the real system; tests
// substitute fakes.
type Env struct {
	Config  *manager.Config
	Log     *zap.Logger
	RunID   string
	Program string

	ACPI        Evaluator
	Radios      rfkillinfo.Reader
	RadioStatus func() (*netinfo.RadioInfo, error)
	Power       func() (*batteryinfo.PowerInfo, error)
	Backlights  Backlights
	Monitors    MonitorReader
	Keys        KeySender
	Kernel      KernelLog
	Alarm       Alarm
	Mixer       Mixer
	Prompt      Prompter
	Idle        IdleInhibitor
}

func NewEnv(ctx context.Context, cfg *manager.Config, log *zap.Logger, runID string) *Env {
	return &Env{
		Config:  cfg,
		Log:     log,
		RunID:   runID,
		Program: filepath.Base(os.Args[0]),

		ACPI:        &lazyACPI{ctx: ctx, cfg: cfg.ACPI, log: log},
		Radios:      rfkillinfo.Rfkill{},
		RadioStatus: netinfo.GetRadioInfo,
		Power:       func() (*batteryinfo.PowerInfo, error) { return batteryinfo.GetPowerInfo("") },
		Backlights:  sysfsBacklights{},
		Monitors:    displayinfo.Xrandr{Binary: cfg.Display.Xrandr},
		Keys:        operation.NewKeyboard(cfg.Display.Uinput),
		Kernel:      kernelLog{Kmsg: operation.Kmsg{Path: cfg.Suspend.Kmsg}},
		Alarm:       operation.RTCWake{},
		Mixer:       pulseMixer{},
		Prompt:      &operation.Dialog,
		Idle:        operation.Idle,
	}
}

// lazyACPI defers the acpidbg install check until a check needs ACPI.
type lazyACPI struct {
	ctx  context.Context
	cfg  manager.ACPIConfig
	log  *zap.Logger
	open func() Evaluator
	once sync.Once
	acpi Evaluator
}

func (l *lazyACPI) Evaluate(ctx context.Context, method string, args ...string) error {
	l.once.Do(func() {
		if l.open != nil {
			l.acpi = l.open()
			return
		}
		l.acpi = operation.NewACPI(l.ctx, l.cfg.Acpidbg, l.cfg.Settle, l.cfg.Install, l.log)
	})
	return l.acpi.Evaluate(ctx, method, args...)
}

type sysfsBacklights struct{}

func (sysfsBacklights) Discover(root string) (string, error) {
	return backlightinfo.Discover(root)
}

func (sysfsBacklights) Open(path string) (backlightinfo.Control, error) {
	if _, err := os.Stat(filepath.Join(path, "brightness")); err != nil {
		return nil, fmt.Errorf("open backlight %s: %w", path, err)
	}
	return backlightinfo.Device{Path: path}, nil
}

func (sysfsBacklights) GraphicsMethod(tablesDir string) (string, error) {
	return acpiinfo.BrightnessMethod(tablesDir)
}

type kernelLog struct {
	operation.Kmsg
	kmsginfo.Dmesg
}

type pulseMixer struct{}

func (pulseMixer) Output() (audioinfo.AudioDevice, error) {
	return audioinfo.GetOutput()
}

func (pulseMixer) SetLevel(ctx context.Context, pct int) error {
	return operation.Audio.SetOutputLevel(ctx, pct)
}

func (pulseMixer) SetMute(ctx context.Context, mute bool) error {
	return operation.Audio.SetOutputMute(ctx, mute)
}

package operation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

var linuxToolsDir = "/usr/lib/linux-tools"

// ACPI evaluates ACPI control methods through the acpidbg batch mode.
type ACPI struct {
	Binary string
	Settle time.Duration
	Log    *zap.Logger
}

// NewACPI returns an evaluator for acpidbg. When install is set and the
// kernel-matched tools are missing, linux-tools is installed with apt first.
// A failed install is logged and otherwise ignored.
func NewACPI(ctx context.Context, binary string, settle time.Duration, install bool, log *zap.Logger) *ACPI {
	if binary == "" {
		binary = "acpidbg"
	}
	a := &ACPI{Binary: binary, Settle: settle, Log: log}

	if install {
		if err := a.EnsureInstalled(ctx); err != nil {
			log.Warn("acpidbg install failed", zap.Error(err))
		}
	}
	return a
}

// EnsureInstalled installs the linux-tools packages for the running kernel
// when its acpidbg is absent.
func (a *ACPI) EnsureInstalled(ctx context.Context) error {
	release, err := kernelRelease()
	if err != nil {
		return err
	}

	if _, err := os.Stat(filepath.Join(linuxToolsDir, release, "acpidbg")); err == nil {
		return nil
	}

	a.Log.Info("installing acpidbg", zap.String("kernel", release))
	cmd := execCommand(ctx, "apt", "install", "-y", "linux-tools-generic", "linux-tools-"+release)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("apt install linux-tools-%s: %w: %s", release, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Evaluate runs "e <method> <args>" in acpidbg and then waits for the
// firmware notification to settle. The settle wait happens even if acpidbg
// reported an error.
func (a *ACPI) Evaluate(ctx context.Context, method string, args ...string) error {
	command := strings.TrimSpace("e " + method + " " + strings.Join(args, " "))

	a.Log.Debug("evaluating acpi method", zap.String("command", command))
	out, runErr := execCommand(ctx, a.Binary, "-b", command).CombinedOutput()
	if runErr != nil {
		runErr = fmt.Errorf("acpidbg %q: %w: %s", command, runErr, strings.TrimSpace(string(out)))
	}

	if err := Pause(ctx, a.Settle); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func kernelRelease() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", fmt.Errorf("uname: %w", err)
	}
	return unix.ByteSliceToString(uts.Release[:]), nil
}

package operation

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Kmsg writes marker lines into the kernel log.
type Kmsg struct {
	Path string
}

// Write appends msg to the kernel ring buffer.
func (k Kmsg) Write(msg string) error {
	path := k.Path
	if path == "" {
		path = "/dev/kmsg"
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.WriteString(msg); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// RTCWake arms the real time clock alarm.
type RTCWake struct {
	Binary string
}

// SetWakeup arms a wakeup d from now without suspending (rtcwake -m no).
func (r RTCWake) SetWakeup(ctx context.Context, d time.Duration) error {
	binary := r.Binary
	if binary == "" {
		binary = "rtcwake"
	}

	secs := int(d.Round(time.Second) / time.Second)
	if secs <= 0 {
		return fmt.Errorf("wakeup delay %s is too short", d)
	}

	out, err := execCommand(ctx, binary, "-m", "no", "--seconds", strconv.Itoa(secs)).CombinedOutput()
	if err != nil {
		return fmt.Errorf("rtcwake: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Suspend presses the firmware sleep button after leaving a marker in the
// kernel log, so the resume can later be matched to this request.
type Suspend struct {
	Kmsg interface {
		Write(msg string) error
	}
	ACPI interface {
		Evaluate(ctx context.Context, method string, args ...string) error
	}
	Method string
	Args   []string
	Wait   time.Duration // the whole sleep and resume cycle
	Log    *zap.Logger
}

// PrepareToSleep writes stamp to the kernel log.
func (s Suspend) PrepareToSleep(stamp string) error {
	return s.Kmsg.Write(stamp)
}

// GoToSleep evaluates the sleep method and blocks until Wait has passed.
// A failed evaluation is only logged; the resume check decides the outcome.
func (s Suspend) GoToSleep(ctx context.Context) error {
	if err := s.ACPI.Evaluate(ctx, s.Method, s.Args...); err != nil {
		s.Log.Warn("acpi evaluate failed", zap.String("method", s.Method), zap.Error(err))
	}
	return Pause(ctx, s.Wait)
}

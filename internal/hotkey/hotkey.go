// Package hotkey holds the hotkey checks and the runner that executes them.
//
// A check drives one hotkey path (an ACPI control method or a synthesized
// key chord), waits for the platform to react and compares the observable
// state with what the hotkey should have done. A check returns nil when the
// hotkey behaved, an error wrapping ErrFailed when it did not, ErrSkipped
// when it could not be attempted, and any other error when the state could
// not be read at all.
package hotkey

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrFailed      = errors.New("check failed")
	ErrSkipped     = errors.New("check skipped")
	ErrUnknownTest = errors.New("unknown test")
)

func failf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFailed, fmt.Sprintf(format, args...))
}

func skipf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSkipped, fmt.Sprintf(format, args...))
}

type Outcome string

const (
	Pass  Outcome = "pass"
	Fail  Outcome = "fail"
	Skip  Outcome = "skip"
	Error Outcome = "error"
)

// Classify maps a check's return value to its outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return Pass
	case errors.Is(err, ErrSkipped):
		return Skip
	case errors.Is(err, ErrFailed):
		return Fail
	default:
		return Error
	}
}

type Result struct {
	Name     string        `json:"name" yaml:"name"`
	Outcome  Outcome       `json:"outcome" yaml:"outcome"`
	Detail   string        `json:"detail,omitempty" yaml:"detail,omitempty"`
	Started  time.Time     `json:"started" yaml:"started"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// OK reports whether the result does not fail the run.
func (r Result) OK() bool {
	return r.Outcome == Pass || r.Outcome == Skip
}

type Test struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env *Env) error
}

package hotkey

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
)

// Runner executes checks one after the other. Checks never overlap: they
// all poke the same firmware and read the same sysfs nodes.
type Runner struct {
	Env *Env
	Log *zap.Logger
	Now func() time.Time
}

func NewRunner(env *Env) *Runner {
	return &Runner{Env: env, Log: env.Log, Now: time.Now}
}

// Run executes tests in order and returns one result per test. A cancelled
// context stops the run; tests not started are not reported.
func (r *Runner) Run(ctx context.Context, tests []Test) []Result {
	if r.Env.Idle != nil {
		if err := r.Env.Idle.Inhibit("hkcheck", "running hotkey checks"); err != nil {
			r.Log.Debug("idle inhibit unavailable", zap.Error(err))
		} else {
			defer r.Env.Idle.UnInhibit()
		}
	}

	results := make([]Result, 0, len(tests))
	for _, t := range tests {
		if ctx.Err() != nil {
			break
		}
		res := r.runOne(ctx, t)
		results = append(results, res)

		fields := []zap.Field{
			zap.String("test", res.Name),
			zap.String("outcome", string(res.Outcome)),
			zap.Duration("took", res.Duration),
		}
		if res.Detail != "" {
			fields = append(fields, zap.String("detail", res.Detail))
		}
		if res.OK() {
			r.Log.Info("check finished", fields...)
		} else {
			r.Log.Error("check finished", fields...)
		}
	}
	return results
}

func (r *Runner) runOne(ctx context.Context, t Test) (res Result) {
	res = Result{Name: t.Name, Started: r.Now()}
	r.Log.Info("check started", zap.String("test", t.Name))

	defer func() {
		if p := recover(); p != nil {
			r.Log.Error("check panicked", zap.String("test", t.Name), zap.ByteString("stack", debug.Stack()))
			res.Outcome = Error
			res.Detail = fmt.Sprintf("panic: %v", p)
		}
		res.Duration = r.Now().Sub(res.Started)
	}()

	err := t.Run(ctx, r.Env)
	res.Outcome = Classify(err)
	if err != nil {
		res.Detail = err.Error()
	}
	return res
}

// Passed reports whether every result is a pass or a skip.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.OK() {
			return false
		}
	}
	return true
}

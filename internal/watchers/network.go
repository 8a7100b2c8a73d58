package watchers

import (
	"context"
	"time"

	"github.com/hoppxi/hkcheck/internal/subscribe"
	"github.com/hoppxi/hkcheck/pkg/rfkillinfo"
)

// Rfkill lists the radios after every rfkill uevent, which the airplane
// mode key produces.
func Rfkill(reader rfkillinfo.Rfkill, emit Emit) func(stop <-chan struct{}) {
	return func(stop <-chan struct{}) {
		ctx, cancel := stopContext(stop)
		defer cancel()

		report := func(event string) {
			lctx, lcancel := context.WithTimeout(ctx, 5*time.Second)
			defer lcancel()

			radios, err := reader.List(lctx)
			if err != nil {
				observe(emit, "rfkill", "error", err.Error())
				return
			}
			observe(emit, "rfkill", event, radios)
		}

		report("initial")

		events, errc := subscribe.UEvents(ctx, "rfkill")
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-errc:
				if ok && err != nil {
					observe(emit, "rfkill", "error", err.Error())
					return
				}
				errc = nil
			case ev, ok := <-events:
				if !ok {
					return
				}
				if ev.Action != "change" {
					continue
				}
				report("change")
			}
		}
	}
}

// Radio forwards NetworkManager and BlueZ radio property changes.
func Radio(emit Emit) func(stop <-chan struct{}) {
	return func(stop <-chan struct{}) {
		ctx, cancel := stopContext(stop)
		defer cancel()

		events, err := subscribe.RadioEvents(ctx)
		if err != nil {
			observe(emit, "dbus", "error", err.Error())
			return
		}

		for ev := range events {
			observe(emit, "dbus", ev.Property, ev)
		}
	}
}

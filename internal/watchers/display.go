package watchers

import (
	"path/filepath"

	"github.com/hoppxi/hkcheck/internal/subscribe"
	"github.com/hoppxi/hkcheck/pkg/backlightinfo"
)

// Backlight reports panel brightness after every backlight uevent, which
// the kernel sends when firmware changes the level on a brightness key.
func Backlight(root string, emit Emit) func(stop <-chan struct{}) {
	return func(stop <-chan struct{}) {
		ctx, cancel := stopContext(stop)
		defer cancel()

		if path, err := backlightinfo.Discover(root); err == nil {
			if info, err := backlightinfo.GetBacklightInfo(path); err == nil {
				observe(emit, "backlight", "initial", info)
			}
		}

		events, errc := subscribe.UEvents(ctx, "backlight")
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-errc:
				if ok && err != nil {
					observe(emit, "backlight", "error", err.Error())
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
				dev := filepath.Join("/sys", ev.DevPath)
				info, err := backlightinfo.GetBacklightInfo(dev)
				if err != nil {
					observe(emit, "backlight", "error", err.Error())
					continue
				}
				observe(emit, "backlight", "change", info)
			}
		}
	}
}

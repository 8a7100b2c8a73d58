package watchers

import (
	"time"

	"github.com/hoppxi/hkcheck/internal/subscribe"
)

// LEDs reports keyboard backlight level changes for the LED directories.
func LEDs(interval time.Duration, emit Emit, dirs ...string) func(stop <-chan struct{}) {
	return func(stop <-chan struct{}) {
		ctx, cancel := stopContext(stop)
		defer cancel()

		for ch := range subscribe.LEDEvents(ctx, interval, dirs...) {
			observe(emit, "leds", "change", ch)
		}
	}
}

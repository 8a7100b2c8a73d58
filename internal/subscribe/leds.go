package subscribe

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

func readBrightness(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(b)))
}

// LEDEvents polls the brightness of each LED directory in dirs and emits
// a LEDChange whenever a value moves. sysfs attributes do not support
// inotify, so polling it is.
func LEDEvents(ctx context.Context, interval time.Duration, dirs ...string) <-chan LEDChange {
	ev := make(chan LEDChange, 8)
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	prev := make(map[string]int)
	for _, d := range dirs {
		if v, err := readBrightness(filepath.Join(d, "brightness")); err == nil {
			prev[d] = v
		}
	}

	go func() {
		defer close(ev)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			for _, d := range dirs {
				cur, err := readBrightness(filepath.Join(d, "brightness"))
				if err != nil {
					continue
				}
				old, seen := prev[d]
				prev[d] = cur
				if !seen || cur == old {
					continue
				}

				select {
				case ev <- LEDChange{Name: filepath.Base(d), Old: old, New: cur}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ev
}

package watchers

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hoppxi/hkcheck/internal/subscribe"
)

func TestStopContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	stop := make(chan struct{})
	ctx, cancel := stopContext(stop)
	defer cancel()

	close(stop)
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled by stop")
	}
}

func TestLEDs(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := filepath.Join(t.TempDir(), "dell::kbd_backlight")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brightness"), []byte("1\n"), 0o644))

	got := make(chan Observation, 4)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		LEDs(5*time.Millisecond, func(o Observation) { got <- o }, dir)(stop)
		close(done)
	}()

	// the watcher takes its baseline asynchronously, so keep moving the level
	// until a change is seen
	var obs Observation
	deadline := time.After(5 * time.Second)
	for level := 2; ; level++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "brightness"), []byte(strconv.Itoa(level)+"\n"), 0o644))
		select {
		case obs = <-got:
		case <-time.After(50 * time.Millisecond):
			continue
		case <-deadline:
			t.Fatal("no observation")
		}
		break
	}

	assert.Equal(t, "leds", obs.Source)
	assert.Equal(t, "change", obs.Event)
	ch, ok := obs.Data.(subscribe.LEDChange)
	require.True(t, ok)
	assert.Equal(t, "dell::kbd_backlight", ch.Name)

	close(stop)
	<-done
}

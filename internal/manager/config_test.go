package manager

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := NewConfigManager("")
	cfg, err := c.Load()
	require.NoError(t, err)
	assert.Empty(t, c.Path())

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.Second, cfg.ACPI.Settle)
	assert.Equal(t, "_SB.HIDD.NRBT", cfg.Airplane.Method)
	assert.Equal(t, []string{"wlan", "bluetooth"}, cfg.Airplane.Radios)
	assert.Equal(t, "max / 2", cfg.Brightness.StartLevel)
	assert.Equal(t, 5*time.Second, cfg.Display.Settle)
	assert.Equal(t, "/sys/class/leds/dell::kbd_backlight", cfg.Keyboard.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.Keyboard.StepDelay)
	assert.Equal(t, time.Minute, cfg.Suspend.WakeupAfter)
	assert.Equal(t, 10*time.Second, cfg.Suspend.Wait)
	assert.Equal(t, byte(1), cfg.Report.MQTT.QOS)
	assert.Equal(t, 100*time.Millisecond, cfg.Monitor.PollInterval)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hkcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
brightness:
  start_level: "max / 4"
  method: _SB.PC00.GFX0.BRT6
suspend:
  wait: 3s
report:
  mqtt:
    enabled: true
    broker: tcp://lab-broker:1883
`), 0o644))
	t.Setenv("HKCHECK_LOG_LEVEL", "warn")
	t.Setenv("HKCHECK_DISPLAY_INTERACTIVE", "true")

	c := NewConfigManager(path)
	cfg, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, path, c.Path())

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Display.Interactive)
	assert.Equal(t, "max / 4", cfg.Brightness.StartLevel)
	assert.Equal(t, "_SB.PC00.GFX0.BRT6", cfg.Brightness.Method)
	assert.Equal(t, 3*time.Second, cfg.Suspend.Wait)
	assert.True(t, cfg.Report.MQTT.Enabled)
	assert.Equal(t, "tcp://lab-broker:1883", cfg.Report.MQTT.Broker)
	// untouched keys keep their defaults
	assert.Equal(t, "2 0", cfg.Suspend.Args)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	c := NewConfigManager(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := c.Load()
	assert.Error(t, err)
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "hkcheck", "hkcheck.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed"), 0o644))

	_, err := NewConfigManager("").Load()
	assert.Error(t, err)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	suspend, ok := s["suspend"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "_SB.BTNV", suspend["method"])
	assert.Equal(t, "60s", suspend["wakeup_after"])

	kbd, ok := s["keyboard_backlight"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "500ms", kbd["step_delay"])
}

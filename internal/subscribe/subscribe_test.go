package subscribe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestParseUEvent(t *testing.T) {
	raw := "change@/devices/pci0000:00/0000:00:02.0/drm/card1/card1-eDP-1/intel_backlight\x00" +
		"ACTION=change\x00" +
		"DEVPATH=/devices/pci0000:00/0000:00:02.0/drm/card1/card1-eDP-1/intel_backlight\x00" +
		"SUBSYSTEM=backlight\x00" +
		"SOURCE=hotkey\x00" +
		"SEQNUM=4242\x00"

	ev, ok := ParseUEvent([]byte(raw))
	require.True(t, ok)
	assert.Equal(t, "change", ev.Action)
	assert.Equal(t, "backlight", ev.Subsystem)
	assert.Equal(t, "/devices/pci0000:00/0000:00:02.0/drm/card1/card1-eDP-1/intel_backlight", ev.DevPath)
	assert.Equal(t, "hotkey", ev.Env["SOURCE"])
}

func TestParseUEventHeaderOnly(t *testing.T) {
	ev, ok := ParseUEvent([]byte("add@/devices/virtual/misc/rfkill\x00"))
	require.True(t, ok)
	assert.Equal(t, "add", ev.Action)
	assert.Equal(t, "/devices/virtual/misc/rfkill", ev.DevPath)
}

func TestParseUEventRejectsLibudev(t *testing.T) {
	_, ok := ParseUEvent([]byte("libudev\x00\xfe\xed\xca\xfe"))
	assert.False(t, ok)

	_, ok = ParseUEvent(nil)
	assert.False(t, ok)
}

func TestRadioEventsFromSignal(t *testing.T) {
	sig := &dbus.Signal{
		Name: propertiesChanged,
		Body: []any{
			"org.freedesktop.NetworkManager",
			map[string]dbus.Variant{
				"WirelessEnabled": dbus.MakeVariant(false),
				"State":           dbus.MakeVariant(uint32(20)),
			},
			[]string{},
		},
	}
	assert.Equal(t, []RadioEvent{{
		Service:  "org.freedesktop.NetworkManager",
		Property: "WirelessEnabled",
		Value:    false,
	}}, radioEventsFromSignal(sig))

	bt := &dbus.Signal{
		Name: propertiesChanged,
		Body: []any{
			"org.bluez.Adapter1",
			map[string]dbus.Variant{"Powered": dbus.MakeVariant(true)},
			[]string{},
		},
	}
	assert.Equal(t, []RadioEvent{{Service: "org.bluez.Adapter1", Property: "Powered", Value: true}}, radioEventsFromSignal(bt))
}

func TestRadioEventsFromSignalIgnored(t *testing.T) {
	assert.Nil(t, radioEventsFromSignal(nil))
	assert.Nil(t, radioEventsFromSignal(&dbus.Signal{Name: "org.freedesktop.DBus.NameOwnerChanged"}))
	assert.Nil(t, radioEventsFromSignal(&dbus.Signal{
		Name: propertiesChanged,
		Body: []any{"org.bluez.Device1", map[string]dbus.Variant{"Connected": dbus.MakeVariant(true)}},
	}))
}

func TestLEDEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := filepath.Join(t.TempDir(), "dell::kbd_backlight")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	brightness := filepath.Join(dir, "brightness")
	require.NoError(t, os.WriteFile(brightness, []byte("0\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	events := LEDEvents(ctx, 5*time.Millisecond, dir)

	require.NoError(t, os.WriteFile(brightness, []byte("2\n"), 0o644))

	select {
	case ev := <-events:
		assert.Equal(t, LEDChange{Name: "dell::kbd_backlight", Old: 0, New: 2}, ev)
	case <-time.After(5 * time.Second):
		t.Fatal("no LED change observed")
	}

	cancel()
	for range events {
	}
}

package batteryinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func supply(t *testing.T, root, name string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for k, v := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, k), []byte(v+"\n"), 0o644))
	}
}

func TestGetPowerInfo(t *testing.T) {
	root := t.TempDir()
	supply(t, root, "BAT0", map[string]string{"type": "Battery", "capacity": "87", "status": "Charging"})
	supply(t, root, "AC", map[string]string{"type": "Mains", "online": "1"})

	info, err := GetPowerInfo(root)
	require.NoError(t, err)
	assert.Equal(t, "BAT0", info.Battery)
	assert.Equal(t, 87, info.Level)
	assert.Equal(t, "Charging", info.Status)
	assert.Equal(t, "AC", info.Source)
}

func TestGetPowerInfoOnBattery(t *testing.T) {
	root := t.TempDir()
	supply(t, root, "BAT1", map[string]string{"capacity": "12", "status": "Discharging"})
	supply(t, root, "ADP1", map[string]string{"type": "Mains", "online": "0"})

	info, err := GetPowerInfo(root)
	require.NoError(t, err)
	assert.Equal(t, "Battery", info.Source)
	assert.Equal(t, 12, info.Level)
}

func TestGetPowerInfoNoBattery(t *testing.T) {
	root := t.TempDir()
	supply(t, root, "AC", map[string]string{"type": "Mains", "online": "1"})

	_, err := GetPowerInfo(root)
	assert.ErrorIs(t, err, ErrNoBattery)
}

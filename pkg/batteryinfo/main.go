package batteryinfo

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const PowerSupplyRoot = "/sys/class/power_supply"

var ErrNoBattery = errors.New("no battery found")

// PowerInfo is the charging state recorded before suspend checks.
type PowerInfo struct {
	Battery string `json:"battery"`
	Level   int    `json:"level"`
	Status  string `json:"status"`
	Source  string `json:"source"`
	Profile string `json:"profile,omitempty"`
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func getBatteryPath(root string) (string, error) {
	matches, _ := filepath.Glob(filepath.Join(root, "BAT*"))
	if len(matches) == 0 {
		return "", ErrNoBattery
	}
	sort.Strings(matches)
	return matches[0], nil
}

// acOnline reports whether any mains supply under root is online.
func acOnline(root string) bool {
	entries, err := os.ReadDir(root)
	if err != nil {
		return false
	}
	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		if readFile(filepath.Join(dir, "type")) == "Mains" && readFile(filepath.Join(dir, "online")) == "1" {
			return true
		}
	}
	return false
}

// GetPowerInfo reads the first battery and the mains state under root
// (PowerSupplyRoot when empty).
func GetPowerInfo(root string) (*PowerInfo, error) {
	if root == "" {
		root = PowerSupplyRoot
	}
	base, err := getBatteryPath(root)
	if err != nil {
		return nil, err
	}

	level, _ := strconv.Atoi(readFile(filepath.Join(base, "capacity")))

	source := "Battery"
	if acOnline(root) {
		source = "AC"
	}

	return &PowerInfo{
		Battery: filepath.Base(base),
		Level:   level,
		Status:  readFile(filepath.Join(base, "status")),
		Source:  source,
		Profile: readFile("/sys/firmware/acpi/platform_profile"),
	}, nil
}

func GetPowerInfoJSON() ([]byte, error) {
	info, err := GetPowerInfo("")
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(info, "", "  ")
}

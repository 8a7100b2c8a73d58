package backlightinfo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ClassRoot holds panel backlight devices.
const ClassRoot = "/sys/class/backlight"

var ErrNoBacklight = errors.New("no backlight devices found")

type BacklightInfo struct {
	Device        string `json:"device"`
	Brightness    int    `json:"brightness"`
	MaxBrightness int    `json:"max_brightness"`
	Level         int    `json:"level"`
}

// Device is a sysfs brightness node: a directory holding brightness and
// max_brightness.
type Device struct {
	Path string
}

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	s := strings.TrimSpace(string(data))
	return strconv.Atoi(s)
}

func (d Device) Brightness() (int, error) {
	v, err := readInt(filepath.Join(d.Path, "brightness"))
	if err != nil {
		return 0, fmt.Errorf("read brightness: %w", err)
	}
	return v, nil
}

func (d Device) MaxBrightness() (int, error) {
	v, err := readInt(filepath.Join(d.Path, "max_brightness"))
	if err != nil {
		return 0, fmt.Errorf("read max_brightness: %w", err)
	}
	return v, nil
}

func (d Device) SetBrightness(v int) error {
	path := filepath.Join(d.Path, "brightness")
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("write brightness: %w", err)
	}
	if _, err := f.WriteString(strconv.Itoa(v)); err != nil {
		f.Close()
		return fmt.Errorf("write brightness: %w", err)
	}
	return f.Close()
}

// Discover returns the panel backlight under root. Only intel and amd style
// names (starting with "i" or "a") qualify; intel_* and amdgpu_* win over
// other matches such as acpi_video0.
func Discover(root string) (string, error) {
	if root == "" {
		root = ClassRoot
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoBacklight, err)
	}

	var preferred, fallback []string
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasPrefix(name, "intel_"), strings.HasPrefix(name, "amdgpu_"):
			preferred = append(preferred, name)
		case strings.HasPrefix(name, "a"), strings.HasPrefix(name, "i"):
			fallback = append(fallback, name)
		}
	}

	for _, group := range [][]string{preferred, fallback} {
		if len(group) == 0 {
			continue
		}
		sort.Strings(group)
		return filepath.Join(root, group[0]), nil
	}
	return "", ErrNoBacklight
}

func GetBacklightInfo(path string) (*BacklightInfo, error) {
	dev := Device{Path: path}
	current, err := dev.Brightness()
	if err != nil {
		return nil, err
	}

	maxVal, err := dev.MaxBrightness()
	if err != nil {
		return nil, err
	}

	if maxVal <= 0 {
		return nil, errors.New("invalid max_brightness value")
	}

	percent := int(float64(current) / float64(maxVal) * 100.0)
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	return &BacklightInfo{
		Device:        filepath.Base(path),
		Brightness:    current,
		MaxBrightness: maxVal,
		Level:         percent,
	}, nil
}

func GetBacklightInfoJSON(path string) ([]byte, error) {
	info, err := GetBacklightInfo(path)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(info, "", "  ")
}

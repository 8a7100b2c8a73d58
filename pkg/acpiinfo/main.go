package acpiinfo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

const (
	TablesDir = "/sys/firmware/acpi/tables"

	// Graphics brightness methods on the legacy PCI0 root bridge and on
	// firmware that names it PC00.
	BrightnessMethodPCI0 = "_SB.PCI0.GFX0.BRT6"
	BrightnessMethodPC00 = "_SB.PC00.GFX0.BRT6"
)

var pc00Signature = []byte("PC00GFX")

// ContainsSignature reports whether any regular table file in dir holds sig
// past its first byte.
func ContainsSignature(dir string, sig []byte) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("read acpi tables: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return false, fmt.Errorf("read acpi table %s: %w", e.Name(), err)
		}
		if bytes.Index(data, sig) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// BrightnessMethod picks the graphics BRT6 method path for this firmware.
// The PCI0 path is returned alongside any error.
func BrightnessMethod(dir string) (string, error) {
	if dir == "" {
		dir = TablesDir
	}

	found, err := ContainsSignature(dir, pc00Signature)
	if err != nil {
		return BrightnessMethodPCI0, err
	}
	if found {
		return BrightnessMethodPC00, nil
	}
	return BrightnessMethodPCI0, nil
}

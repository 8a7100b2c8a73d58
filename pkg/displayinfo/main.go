package displayinfo

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"slices"
	"strings"
)

var execCommand = exec.CommandContext

// geometry matches the mode part of an active output line, e.g.
// "1920x1080+0+0".
var geometry = regexp.MustCompile(`[0-9]x[0-9].*\+`)

type DisplayInfo struct {
	Active []string `json:"active"`
}

// Xrandr reads the monitor topology of the running X session.
type Xrandr struct {
	Binary string
}

// ActiveMonitors returns the names of connected outputs that currently
// drive a mode, in xrandr order.
func (x Xrandr) ActiveMonitors(ctx context.Context) ([]string, error) {
	binary := x.Binary
	if binary == "" {
		binary = "xrandr"
	}

	out, err := execCommand(ctx, binary).Output()
	if err != nil {
		return nil, fmt.Errorf("xrandr: %w", err)
	}
	return parseActive(string(out)), nil
}

func parseActive(out string) []string {
	var active []string

	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, " connected") || !geometry.MatchString(line) {
			continue
		}
		if f := strings.Fields(line); len(f) > 0 {
			active = append(active, f[0])
		}
	}
	return active
}

// Same reports whether two monitor sets are identical, order included.
func Same(a, b []string) bool {
	return slices.Equal(a, b)
}

// GetDisplayInfo lists the active monitors with the given xrandr binary
// (empty means "xrandr" from PATH).
func GetDisplayInfo(ctx context.Context, binary string) (*DisplayInfo, error) {
	active, err := Xrandr{Binary: binary}.ActiveMonitors(ctx)
	if err != nil {
		return nil, err
	}
	return &DisplayInfo{Active: active}, nil
}

func GetDisplayInfoJSON(ctx context.Context, binary string) ([]byte, error) {
	info, err := GetDisplayInfo(ctx, binary)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(info, "", "  ")
}

package rfkillinfo

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var execCommand = exec.CommandContext

type Radio struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	SoftBlocked bool   `json:"soft_blocked"`
	HardBlocked bool   `json:"hard_blocked"`
}

// Rfkill queries radio block state with the rfkill utility.
type Rfkill struct {
	Binary string
}

func (r Rfkill) binary() string {
	if r.Binary == "" {
		return "rfkill"
	}
	return r.Binary
}

func (r Rfkill) list(ctx context.Context, args ...string) (string, error) {
	out, err := execCommand(ctx, r.binary(), append([]string{"list"}, args...)...).Output()
	if err != nil {
		return "", fmt.Errorf("rfkill list %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// SoftUnblocked reports whether the radios matching name (a type such as
// "wlan" or "bluetooth", or an index) are not soft blocked.
func (r Rfkill) SoftUnblocked(ctx context.Context, name string) (bool, error) {
	out, err := r.list(ctx, name)
	if err != nil {
		return false, err
	}
	return softUnblocked(out), nil
}

// softUnblocked mirrors the rfkill list check: the marker has to follow the
// device header, so an empty listing reads as blocked.
func softUnblocked(out string) bool {
	return strings.Index(strings.TrimSpace(out), "Soft blocked: no") > 0
}

// List returns every radio known to rfkill.
func (r Rfkill) List(ctx context.Context) ([]Radio, error) {
	out, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	return parseList(out), nil
}

func parseList(out string) []Radio {
	var radios []Radio
	var cur *Radio

	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if line[0] != ' ' && line[0] != '\t' {
			// "0: phy0: Wireless LAN"
			parts := strings.SplitN(line, ":", 3)
			if len(parts) != 3 {
				cur = nil
				continue
			}
			idx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil {
				cur = nil
				continue
			}
			radios = append(radios, Radio{
				Index: idx,
				Name:  strings.TrimSpace(parts[1]),
				Type:  strings.TrimSpace(parts[2]),
			})
			cur = &radios[len(radios)-1]
			continue
		}

		if cur == nil {
			continue
		}
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		blocked := strings.TrimSpace(val) == "yes"
		switch strings.TrimSpace(key) {
		case "Soft blocked":
			cur.SoftBlocked = blocked
		case "Hard blocked":
			cur.HardBlocked = blocked
		}
	}
	return radios
}

func GetRfkillInfoJSON(ctx context.Context) ([]byte, error) {
	radios, err := Rfkill{}.List(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(radios, "", "  ")
}

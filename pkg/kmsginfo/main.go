package kmsginfo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var execCommand = exec.CommandContext

const (
	SleepMarker  = "prepare to sleep"
	WakeupMarker = "PM: suspend exit"
)

var ErrNoMatch = errors.New("no matching kernel log line")

// Dmesg reads the kernel ring buffer.
type Dmesg struct {
	Binary string
}

// LastTimestamp returns the timestamp in seconds of the last kernel log line
// containing pattern.
func (d Dmesg) LastTimestamp(ctx context.Context, pattern string) (float64, error) {
	binary := d.Binary
	if binary == "" {
		binary = "dmesg"
	}

	out, err := execCommand(ctx, binary).Output()
	if err != nil {
		return 0, fmt.Errorf("dmesg: %w", err)
	}
	return lastTimestamp(string(out), pattern)
}

// SleepTime returns when the last sleep marker was logged. A non-empty
// stamp narrows the search to that exact marker line.
func (d Dmesg) SleepTime(ctx context.Context, stamp string) (float64, error) {
	if stamp == "" {
		stamp = SleepMarker
	}
	return d.LastTimestamp(ctx, stamp)
}

// WakeupTime returns when the kernel last logged a resume.
func (d Dmesg) WakeupTime(ctx context.Context) (float64, error) {
	return d.LastTimestamp(ctx, WakeupMarker)
}

func lastTimestamp(out, pattern string) (float64, error) {
	var last string

	sc := bufio.NewScanner(strings.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if strings.Contains(sc.Text(), pattern) {
			last = sc.Text()
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("scan dmesg: %w", err)
	}
	if last == "" {
		return 0, fmt.Errorf("%w: %q", ErrNoMatch, pattern)
	}
	return parseTimestamp(last)
}

// parseTimestamp reads the "[  123.456789]" prefix of a dmesg line.
func parseTimestamp(line string) (float64, error) {
	open := strings.IndexByte(line, '[')
	end := strings.IndexByte(line, ']')
	if open < 0 || end < open {
		return 0, fmt.Errorf("no timestamp in %q", line)
	}

	ts, err := strconv.ParseFloat(strings.TrimSpace(line[open+1:end]), 64)
	if err != nil {
		return 0, fmt.Errorf("parse timestamp in %q: %w", line, err)
	}
	return ts, nil
}

package kmsginfo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDmesg = `[  101.000001] hkcheck: prepare to sleep [run-a]
[  101.500000] PM: suspend entry (deep)
[  102.250000] PM: suspend exit
[  300.100000] hkcheck: prepare to sleep [run-b]
[  300.900000] PM: suspend entry (deep)
[  361.012345] PM: suspend exit
`

func fakeExec(t *testing.T, stdout string, exitCode int) {
	t.Helper()
	prev := execCommand
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			"HELPER_STDOUT="+stdout,
			"HELPER_EXIT="+strconv.Itoa(exitCode))
		return cmd
	}
	t.Cleanup(func() { execCommand = prev })
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	fmt.Fprint(os.Stdout, os.Getenv("HELPER_STDOUT"))
	code, _ := strconv.Atoi(os.Getenv("HELPER_EXIT"))
	os.Exit(code)
}

func TestLastTimestamp(t *testing.T) {
	ts, err := lastTimestamp(sampleDmesg, SleepMarker)
	require.NoError(t, err)
	assert.InDelta(t, 300.1, ts, 1e-9)

	ts, err = lastTimestamp(sampleDmesg, WakeupMarker)
	require.NoError(t, err)
	assert.InDelta(t, 361.012345, ts, 1e-9)

	ts, err = lastTimestamp(sampleDmesg, "prepare to sleep [run-a]")
	require.NoError(t, err)
	assert.InDelta(t, 101.000001, ts, 1e-9)
}

func TestLastTimestampNoMatch(t *testing.T) {
	_, err := lastTimestamp(sampleDmesg, "prepare to sleep [run-c]")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestParseTimestamp(t *testing.T) {
	ts, err := parseTimestamp("[    0.000000] Linux version 6.8.0")
	require.NoError(t, err)
	assert.Zero(t, ts)

	_, err = parseTimestamp("no brackets here")
	assert.Error(t, err)

	_, err = parseTimestamp("[abc] garbage")
	assert.Error(t, err)
}

func TestDmesg(t *testing.T) {
	fakeExec(t, sampleDmesg, 0)
	ctx := context.Background()

	sleep, err := Dmesg{}.SleepTime(ctx, "")
	require.NoError(t, err)
	assert.InDelta(t, 300.1, sleep, 1e-9)
	wake, err := Dmesg{}.WakeupTime(ctx)
	require.NoError(t, err)
	assert.Less(t, sleep, wake)

	sleep, err = Dmesg{}.SleepTime(ctx, "hkcheck: prepare to sleep [run-a]")
	require.NoError(t, err)
	assert.InDelta(t, 101.000001, sleep, 1e-9)

	_, err = Dmesg{}.SleepTime(ctx, "hkcheck: prepare to sleep [run-c]")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestDmesgFailure(t *testing.T) {
	fakeExec(t, "", 1)

	_, err := Dmesg{}.SleepTime(context.Background(), "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
}

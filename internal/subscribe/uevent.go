package subscribe

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"syscall"
	"time"
)

// recvTimeout bounds each netlink read so a cancelled context is noticed.
const recvTimeout = time.Second

// UEvents streams kernel uevents for the given subsystems (all when none
// are given) until ctx is cancelled. The returned error channel reports a
// socket setup failure and is closed with the event channel.
func UEvents(ctx context.Context, subsystems ...string) (<-chan UEvent, <-chan error) {
	events := make(chan UEvent, 16)
	errc := make(chan error, 1)

	go func() {
		defer close(events)
		defer close(errc)

		fd, err := syscall.Socket(syscall.AF_NETLINK, syscall.SOCK_RAW, syscall.NETLINK_KOBJECT_UEVENT)
		if err != nil {
			errc <- fmt.Errorf("open netlink socket: %w", err)
			return
		}
		defer syscall.Close(fd)

		addr := &syscall.SockaddrNetlink{
			Family: syscall.AF_NETLINK,
			Groups: 1, // kernel broadcast group
		}
		if err := syscall.Bind(fd, addr); err != nil {
			errc <- fmt.Errorf("bind netlink socket: %w", err)
			return
		}

		tv := syscall.NsecToTimeval(recvTimeout.Nanoseconds())
		if err := syscall.SetsockoptTimeval(fd, syscall.SOL_SOCKET, syscall.SO_RCVTIMEO, &tv); err != nil {
			errc <- fmt.Errorf("set netlink timeout: %w", err)
			return
		}

		buf := make([]byte, 8192)
		for ctx.Err() == nil {
			n, _, err := syscall.Recvfrom(fd, buf, 0)
			if err != nil {
				if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EINTR) {
					continue
				}
				errc <- fmt.Errorf("netlink recv: %w", err)
				return
			}

			ev, ok := ParseUEvent(buf[:n])
			if !ok {
				continue
			}
			if len(subsystems) > 0 && !slices.Contains(subsystems, ev.Subsystem) {
				continue
			}

			select {
			case events <- ev:
			case <-ctx.Done():
				return
			default:
				// slow reader, drop
			}
		}
	}()

	return events, errc
}

// ParseUEvent decodes a kernel uevent datagram: an "action@devpath" header
// followed by NUL separated KEY=VALUE pairs. udev's own "libudev" datagrams
// are rejected.
func ParseUEvent(b []byte) (UEvent, bool) {
	fields := strings.Split(strings.TrimRight(string(b), "\x00"), "\x00")
	if len(fields) == 0 || !strings.Contains(fields[0], "@") {
		return UEvent{}, false
	}

	ev := UEvent{Env: make(map[string]string, len(fields)-1)}
	for _, f := range fields[1:] {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			continue
		}
		ev.Env[k] = v
	}

	ev.Action = ev.Env["ACTION"]
	ev.DevPath = ev.Env["DEVPATH"]
	ev.Subsystem = ev.Env["SUBSYSTEM"]
	if ev.Action == "" {
		ev.Action, ev.DevPath, _ = strings.Cut(fields[0], "@")
	}
	return ev, true
}

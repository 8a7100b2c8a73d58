package subscribe

import (
	"context"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

const propertiesChanged = "org.freedesktop.DBus.Properties.PropertiesChanged"

var radioMatchRules = []string{
	"type='signal',interface='org.freedesktop.DBus.Properties',member='PropertiesChanged',path='/org/freedesktop/NetworkManager'",
	"type='signal',interface='org.freedesktop.DBus.Properties',member='PropertiesChanged',path_namespace='/org/bluez'",
}

// RadioEvents reports NetworkManager WirelessEnabled/WwanEnabled and BlueZ
// adapter Powered changes until ctx is cancelled.
func RadioEvents(ctx context.Context) (<-chan RadioEvent, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}

	for _, rule := range radioMatchRules {
		if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
			conn.Close()
			return nil, fmt.Errorf("AddMatch: %w", err)
		}
	}

	signals := make(chan *dbus.Signal, 32)
	conn.Signal(signals)

	events := make(chan RadioEvent, 10)

	go func() {
		<-ctx.Done()
		conn.RemoveSignal(signals)
		conn.Close()
	}()

	go func() {
		defer close(events)

		for {
			var sig *dbus.Signal
			select {
			case <-ctx.Done():
				return
			case sig = <-signals:
			}

			for _, ev := range radioEventsFromSignal(sig) {
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

func radioEventsFromSignal(sig *dbus.Signal) []RadioEvent {
	if sig == nil || sig.Name != propertiesChanged || len(sig.Body) < 2 {
		return nil
	}

	iface, ok := sig.Body[0].(string)
	if !ok {
		return nil
	}
	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return nil
	}

	var props []string
	switch {
	case iface == "org.freedesktop.NetworkManager":
		props = []string{"WirelessEnabled", "WwanEnabled"}
	case strings.HasPrefix(iface, "org.bluez.Adapter1"):
		props = []string{"Powered"}
	default:
		return nil
	}

	var out []RadioEvent
	for _, p := range props {
		if v, ok := changed[p]; ok {
			out = append(out, RadioEvent{Service: iface, Property: p, Value: v.Value()})
		}
	}
	return out
}

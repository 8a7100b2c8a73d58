package netinfo

import (
	"encoding/json"

	"github.com/godbus/dbus/v5"
)

const (
	nmBus       = "org.freedesktop.NetworkManager"
	nmPath      = "/org/freedesktop/NetworkManager"
	nmInterface = "org.freedesktop.NetworkManager"

	bluezBus         = "org.bluez"
	adapterPath      = "/org/bluez/hci0"
	adapterInterface = "org.bluez.Adapter1"
)

// RadioInfo is what the desktop services believe about the radios. Fields
// are nil when the owning service is not reachable.
type RadioInfo struct {
	WirelessEnabled         *bool `json:"wireless_enabled,omitempty"`
	WirelessHardwareEnabled *bool `json:"wireless_hardware_enabled,omitempty"`
	BluetoothPowered        *bool `json:"bluetooth_powered,omitempty"`
}

// GetRadioInfo reads NetworkManager and BlueZ radio properties (no sudo).
func GetRadioInfo() (*RadioInfo, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}

	info := &RadioInfo{}

	nm := conn.Object(nmBus, dbus.ObjectPath(nmPath))
	info.WirelessEnabled = boolProperty(nm, nmInterface+".WirelessEnabled")
	info.WirelessHardwareEnabled = boolProperty(nm, nmInterface+".WirelessHardwareEnabled")

	adapter := conn.Object(bluezBus, dbus.ObjectPath(adapterPath))
	info.BluetoothPowered = boolProperty(adapter, adapterInterface+".Powered")

	return info, nil
}

func boolProperty(obj dbus.BusObject, name string) *bool {
	var v bool
	if err := obj.StoreProperty(name, &v); err != nil {
		return nil
	}
	return &v
}

func GetRadioInfoJSON() ([]byte, error) {
	info, err := GetRadioInfo()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(info, "", "  ")
}

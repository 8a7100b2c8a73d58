package operation

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverBus  = "org.freedesktop.ScreenSaver"
	screenSaverPath = "/org/freedesktop/ScreenSaver"
)

// IdleController keeps the session from blanking while checks run.
type IdleController struct {
	conn   *dbus.Conn
	cookie uint32
}

var Idle = &IdleController{}

// Inhibit asks the session screensaver to stay idle-inhibited until
// UnInhibit is called.
func (i *IdleController) Inhibit(app, reason string) error {
	if i.conn != nil {
		return nil
	}

	// The inhibition lives as long as the bus connection, so it is kept open.
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}

	obj := conn.Object(screenSaverBus, screenSaverPath)
	var cookie uint32
	if err := obj.Call(screenSaverBus+".Inhibit", 0, app, reason).Store(&cookie); err != nil {
		conn.Close()
		return fmt.Errorf("inhibit idle: %w", err)
	}

	i.conn = conn
	i.cookie = cookie
	return nil
}

func (i *IdleController) UnInhibit() error {
	if i.conn == nil {
		return nil
	}
	defer func() {
		i.conn.Close()
		i.conn = nil
	}()

	obj := i.conn.Object(screenSaverBus, screenSaverPath)
	if err := obj.Call(screenSaverBus+".UnInhibit", 0, i.cookie).Store(); err != nil {
		return fmt.Errorf("uninhibit idle: %w", err)
	}
	return nil
}

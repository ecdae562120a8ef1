// Package lid queries the lid switch state from systemd-logind over
// D-Bus. With the lid shut the accelerometer reading says nothing about
// how the user holds the laptop, so the daemon skips those ticks.
package lid

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

type Checker struct {
	conn *dbus.Conn
}

// NewChecker connects to the system bus.
func NewChecker() (*Checker, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("system bus: %w", err)
	}
	return &Checker{conn: conn}, nil
}

// Closed reports whether logind considers the lid closed. D-Bus errors
// are treated as "open".
func (c *Checker) Closed() bool {
	v, err := c.conn.Object("org.freedesktop.login1", "/org/freedesktop/login1").
		GetProperty("org.freedesktop.login1.Manager.LidClosed")
	if err != nil {
		return false
	}

	closed, ok := v.Value().(bool)
	return ok && closed
}

func (c *Checker) Close() error {
	return c.conn.Close()
}

// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discover

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/kortschak/wiimote"
)

const (
	bluezBus          = "org.bluez"
	bluezAdapterIface = "org.bluez.Adapter1"
	bluezDeviceIface  = "org.bluez.Device1"
	objectManager     = "org.freedesktop.DBus.ObjectManager"
)

// BlueZ enumerates nearby Bluetooth BR/EDR devices through the BlueZ
// D-Bus API, reporting each device's name and address. It implements
// wiimote.Lister.
type BlueZ struct {
	// Adapter is the BlueZ adapter name. It defaults to "hci0".
	Adapter string

	// Window is how long each inquiry runs. It defaults to 8 seconds.
	Window time.Duration

	conn *dbus.Conn
}

func (b *BlueZ) Candidates(ctx context.Context) ([]wiimote.Candidate, error) {
	if b.conn == nil {
		// The system bus connection is shared and cached by the
		// dbus package; it is not closed here.
		conn, err := dbus.SystemBus()
		if err != nil {
			return nil, fmt.Errorf("discover: failed to connect to system bus: %w", err)
		}
		b.conn = conn
	}

	adapter := b.Adapter
	if adapter == "" {
		adapter = "hci0"
	}
	window := b.Window
	if window <= 0 {
		window = 8 * time.Second
	}

	adapterPath := dbus.ObjectPath("/org/bluez/" + adapter)
	obj := b.conn.Object(bluezBus, adapterPath)

	powered, err := obj.GetProperty(bluezAdapterIface + ".Powered")
	if err != nil {
		return nil, fmt.Errorf("discover: failed to query adapter %s: %w", adapter, err)
	}
	if on, ok := powered.Value().(bool); !ok || !on {
		return nil, fmt.Errorf("discover: adapter %s is not powered", adapter)
	}

	filter := map[string]dbus.Variant{"Transport": dbus.MakeVariant("bredr")}
	obj.CallWithContext(ctx, bluezAdapterIface+".SetDiscoveryFilter", 0, filter)

	call := obj.CallWithContext(ctx, bluezAdapterIface+".StartDiscovery", 0)
	if call.Err != nil {
		// Discovery may already be running; fall through to the
		// devices BlueZ already knows.
		wiimote.Logger.Debug("start discovery", "adapter", adapter, "error", call.Err)
	} else {
		defer obj.Call(bluezAdapterIface+".StopDiscovery", 0)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(window):
		}
	}

	var objects map[dbus.ObjectPath]map[string]map[string]dbus.Variant
	call = b.conn.Object(bluezBus, "/").CallWithContext(ctx, objectManager+".GetManagedObjects", 0)
	if call.Err != nil {
		return nil, fmt.Errorf("discover: failed to list devices: %w", call.Err)
	}
	if err := call.Store(&objects); err != nil {
		return nil, fmt.Errorf("discover: failed to decode device list: %w", err)
	}

	var candidates []wiimote.Candidate
	for path, ifaces := range objects {
		props, ok := ifaces[bluezDeviceIface]
		if !ok {
			continue
		}
		if !strings.HasPrefix(string(path), string(adapterPath)+"/") {
			continue
		}
		address, ok := props["Address"].Value().(string)
		if !ok {
			continue
		}
		name, _ := props["Name"].Value().(string)
		candidates = append(candidates, wiimote.Candidate{Name: name, Address: address})
	}
	return candidates, nil
}

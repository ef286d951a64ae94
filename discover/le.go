// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package discover provides device listers used by the wiimote scanner
// to enumerate candidate devices on the host's Bluetooth and HID
// stacks.
package discover

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/kortschak/wiimote"
)

// LE enumerates nearby devices by advertisement through the host's
// Bluetooth LE stack, reporting each device's advertised local name
// and address. It is used on hosts where a classic inquiry API is not
// available. It implements wiimote.Lister.
type LE struct {
	// Adapter is the Bluetooth adapter to scan with. It defaults to
	// bluetooth.DefaultAdapter.
	Adapter *bluetooth.Adapter

	// Window is how long each scan runs. It defaults to 8 seconds.
	Window time.Duration

	enableOnce sync.Once
	enableErr  error
}

func (l *LE) Candidates(ctx context.Context) ([]wiimote.Candidate, error) {
	adapter := l.Adapter
	if adapter == nil {
		adapter = bluetooth.DefaultAdapter
	}
	l.enableOnce.Do(func() { l.enableErr = adapter.Enable() })
	if l.enableErr != nil {
		return nil, fmt.Errorf("discover: failed to enable bluetooth: %w", l.enableErr)
	}
	window := l.Window
	if window <= 0 {
		window = 8 * time.Second
	}

	var (
		mu         sync.Mutex
		seen       = make(map[string]bool)
		candidates []wiimote.Candidate
	)
	timer := time.AfterFunc(window, func() { adapter.StopScan() })
	defer timer.Stop()
	stop := context.AfterFunc(ctx, func() { adapter.StopScan() })
	defer stop()

	err := adapter.Scan(func(_ *bluetooth.Adapter, found bluetooth.ScanResult) {
		address := found.Address.String()
		mu.Lock()
		defer mu.Unlock()
		if seen[address] {
			return
		}
		seen[address] = true
		candidates = append(candidates, wiimote.Candidate{
			Name:    found.LocalName(),
			Address: address,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("discover: scan failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return candidates, nil
}

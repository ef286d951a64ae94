// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discover

import (
	"context"
	"sync"

	"github.com/kortschak/wiimote"
	"github.com/kortschak/wiimote/hid"
)

// HID enumerates present HID device interfaces, reporting each
// device's vendor/product identity, serial number and device path.
// Interfaces identified as unrelated to the Wii Remote family are
// remembered and skipped by later scans. It implements wiimote.Lister.
type HID struct {
	mu        sync.Mutex
	unrelated map[string]bool
}

func (l *HID) Candidates(_ context.Context) ([]wiimote.Candidate, error) {
	infos, err := hid.Devices()
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.unrelated == nil {
		l.unrelated = make(map[string]bool)
	}

	var candidates []wiimote.Candidate
	for _, info := range infos {
		if l.unrelated[info.Path] {
			continue
		}
		if !wiimote.SupportedID(info.Vendor, info.Product) {
			l.unrelated[info.Path] = true
		}
		candidates = append(candidates, wiimote.Candidate{
			Vendor:  info.Vendor,
			Product: info.Product,
			Serial:  info.Serial,
			Path:    info.Path,
		})
	}
	return candidates, nil
}

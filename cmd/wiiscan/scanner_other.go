// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux && !windows

package main

import (
	"context"
	"errors"

	"github.com/kortschak/wiimote"
	"github.com/kortschak/wiimote/discover"
)

// Hosts without an L2CAP socket or HID handle backend can enumerate
// devices, but have no transport to connect them with.
func newScanner() *wiimote.Scanner {
	return wiimote.NewScanner(&discover.LE{}, unsupported{}, nil)
}

type unsupported struct{}

func (unsupported) Connect(_ context.Context, _ wiimote.Candidate) (wiimote.Transport, error) {
	return nil, errors.New("no transport backend on this platform")
}

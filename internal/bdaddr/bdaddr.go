// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bdaddr converts Bluetooth device addresses between the
// colon-separated string form and the little-endian byte order used by
// the Linux Bluetooth stack.
package bdaddr

import (
	"fmt"
	"net"
)

// Parse converts a colon-separated Bluetooth address string to BD_ADDR
// byte order. The kernel stores Bluetooth addresses reversed, so
// "AA:BB:CC:DD:EE:FF" becomes [0xff, 0xee, 0xdd, 0xcc, 0xbb, 0xaa].
func Parse(s string) ([6]byte, error) {
	var b [6]byte
	hw, err := net.ParseMAC(s)
	if err != nil {
		return b, err
	}
	if len(hw) != 6 {
		return b, fmt.Errorf("bdaddr: address %q is not 6 bytes", s)
	}
	for i := range b {
		b[i] = hw[5-i]
	}
	return b, nil
}

// String converts a BD_ADDR in little-endian byte order to its
// colon-separated string form.
func String(b [6]byte) string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", b[5], b[4], b[3], b[2], b[1], b[0])
}

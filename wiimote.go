// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wiimote implements a transport layer for Nintendo Wii Remote
// Bluetooth HID controllers. It provides device discovery, connection
// establishment and per-device report channels, hiding the platform's
// asynchronous I/O mechanics behind the Transport interface.
//
// The package moves opaque report buffers only; interpretation of report
// payloads is left to the caller.
package wiimote

import (
	"io"
	"log/slog"
	"time"
)

// Logger receives diagnostic messages from scanning and connection
// establishment. It discards messages by default; embedding applications
// may replace it.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// USB identity of the Wii Remote family.
const (
	VendorID      = 0x057E // Nintendo Co., Ltd
	ProductID     = 0x0306 // RVL-003 Wii Remote
	ProductIDPlus = 0x0330 // RVL-036 Wii Remote Plus
)

// Bluetooth device names reported by the Wii Remote family.
const (
	DeviceName   = "Nintendo RVL-CNT-01"
	DeviceNameTR = "Nintendo RVL-CNT-01-TR"
)

// SupportedName reports whether name is the reported Bluetooth device
// name of a Wii Remote. Matching is exact and case-sensitive.
func SupportedName(name string) bool {
	return name == DeviceName || name == DeviceNameTR
}

// SupportedID reports whether the vendor and product identifier pair
// belongs to the Wii Remote family.
func SupportedID(vendor, product uint16) bool {
	return vendor == VendorID && (product == ProductID || product == ProductIDPlus)
}

// Transport is an owned, bidirectional report channel to a connected
// Wii Remote. A Transport is safe for use from a single goroutine at a
// time; operations must be issued sequentially.
//
// Read, ReadTimeout and Write distinguish three outcomes: a positive
// count with a nil error is a successful transfer, a zero count with a
// nil error means the remote closed the stream or the wait timed out
// (the two are indistinguishable by design), and a non-nil error is a
// hard I/O failure after which the Transport should be closed.
type Transport interface {
	// Read blocks until at least one report byte is available or the
	// stream is closed, and copies at most len(p) bytes into p.
	Read(p []byte) (int, error)

	// ReadTimeout behaves as Read, but returns (0, nil) if no data
	// arrives within timeout. A zero timeout polls without blocking.
	// The timeout expiring does not discard data; a report that
	// arrives later is returned by the next read call.
	ReadTimeout(p []byte, timeout time.Duration) (int, error)

	// Write sends up to len(p) bytes as a single output report,
	// bounded by the backend's fixed report size, and returns the
	// number of payload bytes accepted. Callers must compare the
	// returned count against len(p).
	Write(p []byte) (int, error)

	// Identifier returns a stable opaque identifier for the device,
	// its Bluetooth address or serial number.
	Identifier() string

	// Close releases the device's OS resources. It must be called
	// exactly once.
	Close() error
}

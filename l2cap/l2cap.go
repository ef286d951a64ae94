// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package l2cap implements the socket-based Wii Remote transport over
// a pair of Bluetooth L2CAP channels.
//
// See https://www.wiibrew.org/wiki/Wiimote#HID_Interface: input reports
// sent by the remote are prepended with 0xa1 and output reports sent by
// the host with 0xa2. Output reports are sent over the data channel,
// which is also used to read input reports, so the control channel is
// essentially unused.
package l2cap

import (
	"fmt"
	"time"
)

// L2CAP protocol/service multiplexers of the HID control and data
// channels.
const (
	ControlPSM = 0x0011
	DataPSM    = 0x0013
)

const (
	inputPrefix  = 0xa1
	outputPrefix = 0xa2

	frameSize = 32 // report prefix plus the largest report the remote uses
)

// conn is one connected L2CAP channel.
type conn interface {
	read(p []byte) (int, error)
	write(p []byte) (int, error)
	// readWait waits up to timeout for the channel to become
	// readable, reporting readiness.
	readWait(timeout time.Duration) (bool, error)
	close() error
}

// Transport is a connected Wii Remote using one control and one data
// L2CAP channel. It implements wiimote.Transport.
type Transport struct {
	address       string
	control, data conn
}

// Read reads one input report from the data channel, verifies and
// strips the report prefix and copies at most len(p) payload bytes
// into p. It returns (0, nil) when the remote has closed the stream.
func (t *Transport) Read(p []byte) (int, error) {
	var frame [frameSize]byte

	max := min(len(frame)-1, len(p))
	n, err := t.data.read(frame[:max+1])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	if frame[0] != inputPrefix {
		return 0, fmt.Errorf("l2cap: unexpected report prefix %#x", frame[0])
	}

	return copy(p, frame[1:n]), nil
}

// ReadTimeout behaves as Read, but returns (0, nil) if the data channel
// does not become readable within timeout.
func (t *Transport) ReadTimeout(p []byte, timeout time.Duration) (int, error) {
	ready, err := t.data.readWait(timeout)
	if err != nil {
		return 0, err
	}
	if !ready {
		return 0, nil
	}
	return t.Read(p)
}

// Write sends p as one output report on the data channel. The payload
// is clipped to the wire frame size less the report prefix; the
// returned count excludes the prefix byte.
func (t *Transport) Write(p []byte) (int, error) {
	var frame [frameSize]byte
	frame[0] = outputPrefix

	n := copy(frame[1:], p)
	written, err := t.data.write(frame[:n+1])
	if err != nil {
		return 0, err
	}
	return written - 1, nil
}

// Identifier returns the remote's Bluetooth address.
func (t *Transport) Identifier() string {
	return t.address
}

// Close releases both channel sockets. It must be called exactly once.
func (t *Transport) Close() error {
	cerr := t.control.close()
	derr := t.data.close()
	if cerr != nil {
		return cerr
	}
	return derr
}

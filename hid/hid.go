// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hid implements the handle-based Wii Remote transport over a
// platform HID device handle with asynchronous read and write.
//
// The transport tracks at most one in-flight read and one in-flight
// write. A read call that finds a previous read still outstanding
// resumes that operation rather than issuing a second one, so a caller
// may poll with short timeouts in a loop without losing or duplicating
// reports and without the OS rejecting a concurrent read on the same
// handle.
package hid

import "time"

// Caps holds the report lengths negotiated with the device at
// connection time.
type Caps struct {
	// InputReportLength and OutputReportLength are the fixed byte
	// lengths of the device's input and output reports, including
	// the report ID byte.
	InputReportLength  int
	OutputReportLength int
}

// file is the asynchronous half of a device handle. Implementations
// provide overlapped-style reads and writes with per-direction
// completion signals.
type file interface {
	// readStart issues an asynchronous read into p. If the read
	// completes synchronously, done is true and n is the byte count.
	// A nil error with done false means the operation is in flight.
	readStart(p []byte) (n int, done bool, err error)

	// readWait waits up to timeout for the outstanding read's
	// completion signal, reporting whether it was signalled. A zero
	// timeout polls the signal without blocking.
	readWait(timeout time.Duration) (ready bool, err error)

	// readResult blocks until the outstanding read completes and
	// returns its byte count.
	readResult() (int, error)

	// writeStart issues an asynchronous write of p, with the same
	// completion convention as readStart.
	writeStart(p []byte) (n int, done bool, err error)

	// writeResult blocks until the outstanding write completes and
	// returns its byte count.
	writeResult() (int, error)

	// cancel aborts any outstanding operations on the handle.
	cancel() error

	close() error
}

// Transport is a connected Wii Remote using an asynchronous device
// handle. It implements wiimote.Transport.
type Transport struct {
	f          file
	identifier string

	readPending  bool
	writePending bool

	readBuf  []byte
	writeBuf []byte
}

func newTransport(f file, identifier string, caps Caps) *Transport {
	return &Transport{
		f:          f,
		identifier: identifier,
		readBuf:    make([]byte, caps.InputReportLength),
		writeBuf:   make([]byte, caps.OutputReportLength),
	}
}

// Read blocks until an input report is available and copies at most
// len(p) bytes of it into p.
func (t *Transport) Read(p []byte) (int, error) {
	return t.read(p, -1)
}

// ReadTimeout behaves as Read, but returns (0, nil) if no report
// completes within timeout. The in-flight read is left outstanding and
// is resumed by the next read call. A zero timeout polls for an
// already-completed report without blocking.
func (t *Transport) ReadTimeout(p []byte, timeout time.Duration) (int, error) {
	if timeout < 0 {
		timeout = 0
	}
	return t.read(p, timeout)
}

// read implements the pending-read state machine. A negative timeout
// requests an unbounded wait.
func (t *Transport) read(p []byte, timeout time.Duration) (int, error) {
	if !t.readPending {
		clear(t.readBuf)
		n, done, err := t.f.readStart(t.readBuf)
		if err != nil {
			return 0, err
		}
		if done {
			return copyReport(p, t.readBuf, n), nil
		}
		t.readPending = true
	}

	if timeout >= 0 {
		ready, err := t.f.readWait(timeout)
		if err != nil {
			return 0, err
		}
		if !ready {
			// The operation remains outstanding for the next
			// call to resume.
			return 0, nil
		}
	}

	n, err := t.f.readResult()
	t.readPending = false
	if err != nil {
		return 0, err
	}
	return copyReport(p, t.readBuf, n), nil
}

// Write sends p as one fixed-size output report, zero-padding the
// remainder of the report. The write is synchronous from the caller's
// perspective: any previous write is waited out first, and the new
// write is waited on until it completes.
func (t *Transport) Write(p []byte) (int, error) {
	if t.writePending {
		t.writePending = false
		if _, err := t.f.writeResult(); err != nil {
			return 0, err
		}
	}

	n := copy(t.writeBuf, p)
	clear(t.writeBuf[n:])

	n, done, err := t.f.writeStart(t.writeBuf)
	if err != nil {
		return 0, err
	}
	if done {
		return n, nil
	}
	t.writePending = true
	n, err = t.f.writeResult()
	t.writePending = false
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Identifier returns the device serial number.
func (t *Transport) Identifier() string {
	return t.identifier
}

// Close waits out or cancels any outstanding operation and releases
// the device handle. It must be called exactly once; closing with an
// operation still in flight would otherwise let the OS write into a
// released buffer.
func (t *Transport) Close() error {
	if t.readPending || t.writePending {
		t.f.cancel()
		if t.readPending {
			t.f.readResult()
			t.readPending = false
		}
		if t.writePending {
			t.f.writeResult()
			t.writePending = false
		}
	}
	return t.f.close()
}

func copyReport(dst, src []byte, n int) int {
	return copy(dst, src[:min(n, len(src))])
}

// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hid

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sys/windows"

	"github.com/kortschak/wiimote"
)

// Open connects to the device described by info for reading and
// writing.
func Open(info DeviceInfo) (*Transport, error) {
	h, err := open(info.Path, windows.GENERIC_READ|windows.GENERIC_WRITE)
	if err != nil {
		return nil, fmt.Errorf("hid: failed to open %s: %w", info.Path, err)
	}
	f, err := newOverlappedFile(h)
	if err != nil {
		return nil, err
	}
	return newTransport(f, info.Serial, info.Caps), nil
}

// Opener establishes handle transports for candidates accepted during
// scanning. It implements wiimote.Connector.
type Opener struct{}

func (Opener) Connect(_ context.Context, c wiimote.Candidate) (wiimote.Transport, error) {
	info, err := Describe(c.Path)
	if err != nil {
		return nil, err
	}
	return Open(info)
}

func open(path string, access uint32) (windows.Handle, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return windows.InvalidHandle, err
	}
	return windows.CreateFile(p, access,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil, windows.OPEN_EXISTING, windows.FILE_FLAG_OVERLAPPED, 0)
}

// overlappedFile implements file over a Windows handle opened with
// FILE_FLAG_OVERLAPPED, with one manual-reset event per direction.
type overlappedFile struct {
	h      windows.Handle
	rd, wr windows.Overlapped
}

func newOverlappedFile(h windows.Handle) (*overlappedFile, error) {
	f := &overlappedFile{h: h}
	var err error
	f.rd.HEvent, err = windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		windows.CloseHandle(h)
		return nil, fmt.Errorf("hid: failed to create read event: %w", err)
	}
	f.wr.HEvent, err = windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		windows.CloseHandle(f.rd.HEvent)
		windows.CloseHandle(h)
		return nil, fmt.Errorf("hid: failed to create write event: %w", err)
	}
	return f, nil
}

func (f *overlappedFile) readStart(p []byte) (int, bool, error) {
	windows.ResetEvent(f.rd.HEvent)
	var done uint32
	err := windows.ReadFile(f.h, p, &done, &f.rd)
	switch err {
	case nil:
		return int(done), true, nil
	case windows.ERROR_IO_PENDING:
		return 0, false, nil
	default:
		return 0, false, err
	}
}

func (f *overlappedFile) readWait(timeout time.Duration) (bool, error) {
	return waitEvent(f.rd.HEvent, timeout)
}

func (f *overlappedFile) readResult() (int, error) {
	var done uint32
	err := windows.GetOverlappedResult(f.h, &f.rd, &done, true)
	if err != nil {
		return 0, err
	}
	return int(done), nil
}

func (f *overlappedFile) writeStart(p []byte) (int, bool, error) {
	windows.ResetEvent(f.wr.HEvent)
	var done uint32
	err := windows.WriteFile(f.h, p, &done, &f.wr)
	switch err {
	case nil:
		return int(done), true, nil
	case windows.ERROR_IO_PENDING:
		return 0, false, nil
	default:
		return 0, false, err
	}
}

func (f *overlappedFile) writeResult() (int, error) {
	var done uint32
	err := windows.GetOverlappedResult(f.h, &f.wr, &done, true)
	if err != nil {
		return 0, err
	}
	return int(done), nil
}

func (f *overlappedFile) cancel() error {
	return windows.CancelIo(f.h)
}

func (f *overlappedFile) close() error {
	windows.CloseHandle(f.rd.HEvent)
	windows.CloseHandle(f.wr.HEvent)
	return windows.CloseHandle(f.h)
}

func waitEvent(ev windows.Handle, timeout time.Duration) (bool, error) {
	event, err := windows.WaitForSingleObject(ev, uint32(timeout/time.Millisecond))
	switch event {
	case windows.WAIT_OBJECT_0:
		return true, nil
	case windows.WAIT_TIMEOUT:
		return false, nil
	default:
		if err == nil {
			err = fmt.Errorf("hid: wait failed: event %#x", event)
		}
		return false, err
	}
}

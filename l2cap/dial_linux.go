// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package l2cap

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/kortschak/wiimote"
	"github.com/kortschak/wiimote/internal/bdaddr"
)

// Dial connects the control and data channels of the Wii Remote at the
// given Bluetooth address and returns the resulting Transport.
func Dial(address string) (*Transport, error) {
	addr, err := bdaddr.Parse(address)
	if err != nil {
		return nil, err
	}

	control, err := connect(addr, ControlPSM)
	if err != nil {
		return nil, fmt.Errorf("l2cap: unable to connect control channel of %s: %w", address, err)
	}
	data, err := connect(addr, DataPSM)
	if err != nil {
		control.close()
		return nil, fmt.Errorf("l2cap: unable to connect data channel of %s: %w", address, err)
	}

	return &Transport{address: address, control: control, data: data}, nil
}

func connect(addr [6]byte, psm uint16) (*socket, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_SEQPACKET, unix.BTPROTO_L2CAP)
	if err != nil {
		return nil, err
	}
	sa := &unix.SockaddrL2{Addr: addr, PSM: psm}
	if err := unix.Connect(fd, sa); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return &socket{fd: fd}, nil
}

// socket is one connected L2CAP channel file descriptor.
type socket struct {
	fd int
}

func (s *socket) read(p []byte) (int, error) {
	for {
		n, err := unix.Read(s.fd, p)
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}

func (s *socket) write(p []byte) (int, error) {
	n, err := unix.Write(s.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

func (s *socket) readWait(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, int(timeout/time.Millisecond))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

func (s *socket) close() error {
	return unix.Close(s.fd)
}

// Dialer establishes socket transports for candidates accepted during
// scanning. It implements wiimote.Connector.
type Dialer struct{}

func (Dialer) Connect(_ context.Context, c wiimote.Candidate) (wiimote.Transport, error) {
	return Dial(c.Address)
}

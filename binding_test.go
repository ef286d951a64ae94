// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wiimote

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

// errTransport fails every I/O operation.
type errTransport struct{}

func (errTransport) Read(p []byte) (int, error) { return 0, errors.New("gone") }
func (errTransport) ReadTimeout(p []byte, timeout time.Duration) (int, error) {
	return 0, errors.New("gone")
}
func (errTransport) Write(p []byte) (int, error) { return 0, errors.New("gone") }
func (errTransport) Identifier() string          { return "" }
func (errTransport) Close() error                { return nil }

// nTransport completes every I/O operation with n bytes.
type nTransport struct {
	n int
}

func (t nTransport) Read(p []byte) (int, error) { return t.n, nil }
func (t nTransport) ReadTimeout(p []byte, timeout time.Duration) (int, error) {
	return t.n, nil
}
func (t nTransport) Write(p []byte) (int, error) { return t.n, nil }
func (t nTransport) Identifier() string          { return "" }
func (t nTransport) Close() error                { return nil }

func TestBindingReturnCodes(t *testing.T) {
	buf := make([]byte, 32)

	ok := nTransport{n: 21}
	if got := Read(ok, buf); got != 21 {
		t.Errorf("unexpected read result: got %d, want 21", got)
	}
	if got := ReadTimeout(ok, buf, 100); got != 21 {
		t.Errorf("unexpected read timeout result: got %d, want 21", got)
	}
	if got := Write(ok, buf[:2]); got != 21 {
		t.Errorf("unexpected write result: got %d, want 21", got)
	}

	// EOF and an expired timeout are both reported as zero.
	eof := nTransport{n: 0}
	if got := Read(eof, buf); got != 0 {
		t.Errorf("unexpected read result at EOF: got %d, want 0", got)
	}
	if got := ReadTimeout(eof, buf, 100); got != 0 {
		t.Errorf("unexpected read timeout result at expiry: got %d, want 0", got)
	}

	var bad errTransport
	if got := Read(bad, buf); got != ErrorCode {
		t.Errorf("unexpected read error code: got %d, want %d", got, ErrorCode)
	}
	if got := ReadTimeout(bad, buf, 100); got != ErrorCode {
		t.Errorf("unexpected read timeout error code: got %d, want %d", got, ErrorCode)
	}
	if got := Write(bad, buf[:2]); got != ErrorCode {
		t.Errorf("unexpected write error code: got %d, want %d", got, ErrorCode)
	}
}

func TestIdentifierLength(t *testing.T) {
	dev := &fakeTransport{id: "00:11:22:33:44:55"}
	if got, want := IdentifierLength(dev), len(dev.id)+1; got != want {
		t.Errorf("unexpected identifier length: got %d, want %d", got, want)
	}
}

var copyIdentifierTests = []struct {
	name     string
	id       string
	capacity int
	want     bool
}{
	{name: "exact_fit", id: "00:11:22:33:44:55", capacity: 18, want: true},
	{name: "spare_room", id: "00:11:22:33:44:55", capacity: 32, want: true},
	{name: "one_short", id: "00:11:22:33:44:55", capacity: 17, want: false},
	{name: "empty_identifier", id: "", capacity: 1, want: true},
	{name: "zero_capacity", id: "", capacity: 0, want: false},
}

func TestCopyIdentifier(t *testing.T) {
	for _, test := range copyIdentifierTests {
		t.Run(test.name, func(t *testing.T) {
			dev := &fakeTransport{id: test.id}
			buf := bytes.Repeat([]byte{0xee}, test.capacity)
			got := CopyIdentifier(dev, buf)
			if got != test.want {
				t.Fatalf("unexpected result: got %t, want %t", got, test.want)
			}
			if !test.want {
				// A failed copy must leave the buffer unmodified.
				if want := bytes.Repeat([]byte{0xee}, test.capacity); !bytes.Equal(buf, want) {
					t.Errorf("buffer modified on failed copy: got %x", buf)
				}
				return
			}
			if string(buf[:len(test.id)]) != test.id {
				t.Errorf("unexpected identifier: got %q, want %q", buf[:len(test.id)], test.id)
			}
			if buf[len(test.id)] != 0 {
				t.Errorf("identifier not NUL terminated: got %#02x", buf[len(test.id)])
			}
		})
	}
}

// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bdaddr

import (
	"strings"
	"testing"
)

var parseTests = []struct {
	addr    string
	want    [6]byte
	wantErr bool
}{
	{addr: "AA:BB:CC:DD:EE:FF", want: [6]byte{0xff, 0xee, 0xdd, 0xcc, 0xbb, 0xaa}},
	{addr: "00:1f:32:9b:66:01", want: [6]byte{0x01, 0x66, 0x9b, 0x32, 0x1f, 0x00}},
	{addr: "00:00:00:00:00:00", want: [6]byte{}},
	{addr: "not-an-address", wantErr: true},
	{addr: "", wantErr: true},
	{addr: "02:00:5e:10:00:00:00:01", wantErr: true}, // EUI-64
}

func TestParse(t *testing.T) {
	for _, test := range parseTests {
		t.Run(test.addr, func(t *testing.T) {
			got, err := Parse(test.addr)
			if (err != nil) != test.wantErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				return
			}
			if got != test.want {
				t.Errorf("unexpected address: got:%#x want:%#x", got, test.want)
			}
			if rt := String(got); !strings.EqualFold(rt, test.addr) {
				t.Errorf("round trip mismatch: got:%q want:%q", rt, test.addr)
			}
		})
	}
}

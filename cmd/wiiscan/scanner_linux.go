// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/kortschak/wiimote"
	"github.com/kortschak/wiimote/discover"
	"github.com/kortschak/wiimote/l2cap"
)

func newScanner() *wiimote.Scanner {
	return wiimote.NewScanner(&discover.BlueZ{}, l2cap.Dialer{}, nil)
}

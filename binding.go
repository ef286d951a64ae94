// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wiimote

import "time"

// The functions in this file present the Transport contract with the
// integer return codes expected by foreign binding layers: a negative
// count signals a hard I/O error, a zero count a closed stream or an
// expired timeout.

// ErrorCode is returned by Read, ReadTimeout and Write on a hard I/O
// failure.
const ErrorCode = -1

// Read reads from t into p, returning the byte count, 0 on EOF, or
// ErrorCode on error.
func Read(t Transport, p []byte) int32 {
	n, err := t.Read(p)
	if err != nil {
		return ErrorCode
	}
	return int32(n)
}

// ReadTimeout reads from t into p, returning the byte count, 0 on EOF
// or after millis milliseconds without data, or ErrorCode on error.
func ReadTimeout(t Transport, p []byte, millis int) int32 {
	n, err := t.ReadTimeout(p, time.Duration(millis)*time.Millisecond)
	if err != nil {
		return ErrorCode
	}
	return int32(n)
}

// Write writes p to t, returning the number of payload bytes accepted
// or ErrorCode on error.
func Write(t Transport, p []byte) int32 {
	n, err := t.Write(p)
	if err != nil {
		return ErrorCode
	}
	return int32(n)
}

// IdentifierLength returns the length of t's identifier including the
// terminating NUL byte.
func IdentifierLength(t Transport) int {
	return len(t.Identifier()) + 1
}

// CopyIdentifier copies t's NUL-terminated identifier into p. It
// returns false, leaving p unmodified, if p is too small to hold the
// identifier and its terminator.
func CopyIdentifier(t Transport, p []byte) bool {
	id := t.Identifier()
	if len(id)+1 > len(p) {
		return false
	}
	n := copy(p, id)
	p[n] = 0
	return true
}

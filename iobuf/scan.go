// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package iobuf

import "bytes"

// Scanner inspects a readable window and returns the byte count consumed
// through a matched delimiter, or Eof when no delimiter is present yet.
// The consumed count includes the delimiter itself; the token is the
// window prefix before it. Scanners written to this convention work with
// any Buffer.
type Scanner func(window []byte) int

// ScanDelim returns a scanner matching a single-byte delimiter.
func ScanDelim(delim byte) Scanner {
	return func(window []byte) int {
		if i := bytes.IndexByte(window, delim); i >= 0 {
			return i + 1
		}
		return Eof
	}
}

// ScanLine matches newline-terminated tokens. The window is raw bytes; any
// carriage return stays part of the token.
var ScanLine = ScanDelim('\n')

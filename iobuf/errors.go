// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package iobuf

import "errors"

// The buffer surfaces every failure through one of these sentinel values;
// nothing is retried internally. Structural misuse is a programmer error,
// capacity and conduit conditions are recoverable by the caller.
var (
	// ErrUnderflow reports a read that exceeds the buffer capacity or has
	// no conduit to refill from.
	ErrUnderflow = errors.New("buffer underflow")

	// ErrOverflow reports a write that exceeds the buffer capacity with no
	// conduit to drain to.
	ErrOverflow = errors.New("buffer overflow")

	// ErrEofRead reports a conduit that ended while the buffer still owed
	// bytes to a read.
	ErrEofRead = errors.New("end-of-flow while reading")

	// ErrEofWrite reports a conduit that refused writes or ended during a
	// flush.
	ErrEofWrite = errors.New("end-of-flow while writing")

	// ErrTokenTooLarge reports a token scan that exhausted the entire
	// capacity without finding a delimiter.
	ErrTokenTooLarge = errors.New("token too large")

	// ErrSmallBuffer reports a fill that could not reserve the minimum
	// working space.
	ErrSmallBuffer = errors.New("input buffer is too small")
)

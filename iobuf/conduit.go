// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package iobuf

import "io"

// Eof is the single sentinel conduits and scanners use to report end of
// flow or "need more data". It is deliberately not an error value: conduit
// reads and writes return byte counts, and Eof is the count that is not
// one.
const Eof = -1

// DefaultBufferSize is the conduit buffer size used when an adapter is not
// told otherwise.
const DefaultBufferSize = 16 * 1024

// Conduit is an external byte source/sink a Buffer can mediate. Every
// method returning a byte count returns Eof instead when the flow has
// ended.
type Conduit interface {
	// BufferSize returns the preferred buffer capacity for this conduit.
	BufferSize() int
	// IsTextual reports whether the conduit carries text.
	IsTextual() bool
	// Read copies up to len(dst) bytes into dst, returning the count or
	// Eof.
	Read(dst []byte) int
	// Write consumes up to len(src) bytes from src, returning the count or
	// Eof. Partial writes are permitted.
	Write(src []byte) int
	// Flush consumes all of src, reporting whether it did.
	Flush(src []byte) bool
	// Fill reads until dst is full or input ends, returning the count or
	// Eof when input had already ended.
	Fill(dst []byte) int
}

// IOConduit adapts Go streams to the Conduit contract. Either side may be
// nil; operations on the missing side report Eof.
type IOConduit struct {
	r       io.Reader
	w       io.Writer
	size    int
	textual bool
}

// NewIOConduit returns a conduit over both sides of rw.
func NewIOConduit(rw io.ReadWriter, size int, textual bool) *IOConduit {
	return &IOConduit{r: rw, w: rw, size: pickSize(size), textual: textual}
}

// NewReaderConduit returns a read-only conduit over r.
func NewReaderConduit(r io.Reader, size int, textual bool) *IOConduit {
	return &IOConduit{r: r, size: pickSize(size), textual: textual}
}

// NewWriterConduit returns a write-only conduit over w.
func NewWriterConduit(w io.Writer, size int, textual bool) *IOConduit {
	return &IOConduit{w: w, size: pickSize(size), textual: textual}
}

func pickSize(size int) int {
	if size <= 0 {
		return DefaultBufferSize
	}
	return size
}

func (c *IOConduit) BufferSize() int { return c.size }

func (c *IOConduit) IsTextual() bool { return c.textual }

func (c *IOConduit) Read(dst []byte) int {
	if c.r == nil || len(dst) == 0 {
		return Eof
	}
	n, err := c.r.Read(dst)
	if n > 0 {
		return n
	}
	if err != nil {
		return Eof
	}
	return 0
}

func (c *IOConduit) Write(src []byte) int {
	if c.w == nil {
		return Eof
	}
	n, err := c.w.Write(src)
	if n > 0 {
		return n
	}
	if err != nil {
		return Eof
	}
	return 0
}

func (c *IOConduit) Flush(src []byte) bool {
	for len(src) > 0 {
		n := c.Write(src)
		if n == Eof {
			return false
		}
		src = src[n:]
	}
	return true
}

func (c *IOConduit) Fill(dst []byte) int {
	total := 0
	for total < len(dst) {
		n := c.Read(dst[total:])
		if n == Eof {
			if total == 0 {
				return Eof
			}
			break
		}
		total += n
	}
	return total
}

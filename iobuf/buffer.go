// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package iobuf provides a dual-mode byte buffer: a bounded window over a
// byte region that can also mediate an external byte source/sink, the
// Conduit. Slices returned by buffer methods are borrowed views into the
// backing region and are invalidated by any subsequent mutating call.
//
// A Buffer is single-owner: no operation may be called concurrently with
// any other operation on the same instance.
package iobuf

// Style records the nature of the buffered content.
type Style int

const (
	// Raw is the style of memory-only buffers.
	Raw Style = iota
	// Binary content came from a non-textual conduit.
	Binary
	// Text content came from a textual conduit.
	Text
)

// minWorkingSpace is the space Fill insists on after compaction so conduit
// filters always see a usable window.
const minWorkingSpace = 32

// Buffer is a byte window with the invariant
// 0 <= position <= limit <= capacity. Content between position and limit is
// readable; space between limit and capacity is writable. When a conduit is
// bound, reads refill on underflow and writes drain on overflow.
type Buffer struct {
	data    []byte
	pos     int
	lim     int
	style   Style
	conduit Conduit
}

// New returns an empty memory buffer of the given capacity.
func New(capacity int) *Buffer {
	return &Buffer{data: make([]byte, capacity)}
}

// NewBytes returns a buffer over an externally supplied region with the
// whole region readable. The region is aliased, not copied.
func NewBytes(data []byte) *Buffer {
	return &Buffer{data: data, lim: len(data)}
}

// NewConduit returns a buffer bound to c, sized by the conduit's preferred
// buffer size and styled by its textuality.
func NewConduit(c Conduit) *Buffer {
	style := Binary
	if c.IsTextual() {
		style = Text
	}
	return &Buffer{data: make([]byte, c.BufferSize()), style: style, conduit: c}
}

// Attach binds c as the buffer's conduit and returns the buffer. The
// conduit remains owned by the caller; the buffer never closes it.
func (b *Buffer) Attach(c Conduit) *Buffer {
	b.conduit = c
	return b
}

// Capacity returns the length of the backing region.
func (b *Buffer) Capacity() int { return len(b.data) }

// Position returns the read cursor.
func (b *Buffer) Position() int { return b.pos }

// Limit returns the end of readable content.
func (b *Buffer) Limit() int { return b.lim }

// Readable returns the byte count available for reading.
func (b *Buffer) Readable() int { return b.lim - b.pos }

// Writable returns the byte count available for writing.
func (b *Buffer) Writable() int { return len(b.data) - b.lim }

// Style returns the content style.
func (b *Buffer) Style() Style { return b.style }

// Bytes returns the readable window as a borrowed view.
func (b *Buffer) Bytes() []byte { return b.data[b.pos:b.lim] }

// String returns the readable window as text.
func (b *Buffer) String() string { return string(b.data[b.pos:b.lim]) }

// Get returns a view of the next n readable bytes, consuming them iff eat.
// When fewer than n bytes are readable the buffer compresses and refills
// from its conduit until n bytes are present. With no conduit, or when n
// exceeds the capacity, Get fails with ErrUnderflow; a conduit reporting
// end of input before enough bytes arrive fails with ErrEofRead.
func (b *Buffer) Get(n int, eat bool) ([]byte, error) {
	if n > b.Readable() {
		if n > len(b.data) || b.conduit == nil {
			return nil, ErrUnderflow
		}
		b.Compress()
		for b.Readable() < n {
			got := b.conduit.Read(b.data[b.lim:])
			if got == Eof {
				return nil, ErrEofRead
			}
			b.lim += got
		}
	}
	window := b.data[b.pos : b.pos+n]
	if eat {
		b.pos += n
	}
	return window, nil
}

// GetInto copies readable content into dst and, when dst still has room and
// a conduit is bound, fills the remainder directly from the conduit. It
// returns the bytes actually produced.
func (b *Buffer) GetInto(dst []byte) int {
	n := copy(dst, b.data[b.pos:b.lim])
	b.pos += n
	if n < len(dst) && b.conduit != nil {
		if got := b.conduit.Fill(dst[n:]); got != Eof {
			n += got
		}
	}
	return n
}

// Append writes src after the current content. On overflow with a bound
// conduit the buffer is flushed first, and a src larger than the whole
// capacity is handed straight to the conduit. Overflow with no conduit
// fails with ErrOverflow.
func (b *Buffer) Append(src []byte) error {
	if len(src) > b.Writable() {
		if b.conduit == nil {
			return ErrOverflow
		}
		if err := b.Flush(); err != nil {
			return err
		}
		if len(src) > len(b.data) {
			for len(src) > 0 {
				n := b.conduit.Write(src)
				if n == Eof {
					return ErrEofWrite
				}
				src = src[n:]
			}
			return nil
		}
	}
	b.lim += copy(b.data[b.lim:], src)
	return nil
}

// Skip consumes n readable bytes; a negative n rewinds the read cursor by
// up to -n bytes, bounded by the start of the buffer.
func (b *Buffer) Skip(n int) error {
	if n < 0 {
		n = -n
		if n > b.pos {
			n = b.pos
		}
		b.pos -= n
		return nil
	}
	_, err := b.Get(n, true)
	return err
}

// Compress moves unread content to the front of the backing region,
// discarding the already-read prefix. The source and destination ranges may
// overlap. Views previously handed out are invalidated.
func (b *Buffer) Compress() *Buffer {
	if b.pos > 0 {
		n := b.lim - b.pos
		if n > 0 {
			copy(b.data, b.data[b.pos:b.lim])
		}
		b.pos = 0
		b.lim = n
	}
	return b
}

// Clear discards all content.
func (b *Buffer) Clear() *Buffer {
	b.pos = 0
	b.lim = 0
	return b
}

// Truncate moves the limit to extent and reports whether it did. extent
// must stay within [position, capacity].
func (b *Buffer) Truncate(extent int) bool {
	if extent < b.pos || extent > len(b.data) {
		return false
	}
	b.lim = extent
	return true
}

// Flush asks the conduit to consume the entire readable content and clears
// the buffer on success. Partial consumption fails with ErrEofWrite. With
// no conduit Flush is a no-op.
func (b *Buffer) Flush() error {
	if b.conduit != nil {
		if !b.conduit.Flush(b.data[b.pos:b.lim]) {
			return ErrEofWrite
		}
		b.Clear()
	}
	return nil
}

// Drain writes as much readable content as the conduit accepts this call
// and compresses what remains. Partial acceptance is normal; a conduit
// reporting end of output fails with ErrEofWrite.
func (b *Buffer) Drain() error {
	if b.conduit == nil {
		return ErrOverflow
	}
	n := b.conduit.Write(b.data[b.pos:b.lim])
	if n == Eof {
		return ErrEofWrite
	}
	b.pos += n
	b.Compress()
	return nil
}

// Fill reads once from the bound conduit into the writable region,
// returning the byte count or Eof. See FillFrom.
func (b *Buffer) Fill() (int, error) {
	return b.FillFrom(b.conduit)
}

// FillFrom reads once from c into the writable region. An empty buffer is
// cleared first; otherwise the buffer compresses when fewer than 32
// writable bytes remain and fails with ErrSmallBuffer when compaction
// cannot free that minimum working space. The conduit's end of input is
// returned as Eof, not an error.
func (b *Buffer) FillFrom(c Conduit) (int, error) {
	if c == nil {
		return 0, ErrUnderflow
	}
	if b.Readable() == 0 {
		b.Clear()
	} else if b.Writable() < minWorkingSpace {
		b.Compress()
		if b.Writable() < minWorkingSpace {
			return 0, ErrSmallBuffer
		}
	}
	n := c.Read(b.data[b.lim:])
	if n != Eof {
		b.lim += n
	}
	return n, nil
}

// Next scans the readable window for a token. scan returns the byte count
// consumed through the delimiter, or Eof when it needs more data. On a
// match the read cursor advances by the scanned amount and Next reports
// true. On no-match with no conduit the remaining content is skipped and
// Next reports false; with a conduit the buffer compacts and refills until
// the scanner matches or input ends. A window already spanning the whole
// capacity without a match fails with ErrTokenTooLarge.
func (b *Buffer) Next(scan Scanner) (bool, error) {
	for {
		n := scan(b.data[b.pos:b.lim])
		if n != Eof {
			b.pos += n
			return true, nil
		}
		if b.conduit == nil {
			b.pos = b.lim
			return false, nil
		}
		if b.pos > 0 {
			b.Compress()
		} else if b.Writable() == 0 {
			return false, ErrTokenTooLarge
		}
		got := b.conduit.Read(b.data[b.lim:])
		if got == Eof {
			b.pos = b.lim
			return false, nil
		}
		b.lim += got
	}
}

// ReadWith hands the readable window to dg and advances the read cursor by
// the returned count. A dg returning Eof leaves the buffer untouched. The
// return value is dg's.
func (b *Buffer) ReadWith(dg func([]byte) int) int {
	n := dg(b.data[b.pos:b.lim])
	if n != Eof {
		b.pos += n
	}
	return n
}

// WriteWith hands the writable window to dg and advances the limit by the
// returned count. A dg returning Eof leaves the buffer untouched. The
// return value is dg's.
func (b *Buffer) WriteWith(dg func([]byte) int) int {
	n := dg(b.data[b.lim:])
	if n != Eof {
		b.lim += n
	}
	return n
}

// Wait blocks until at least one readable byte is present, consuming
// nothing.
func (b *Buffer) Wait() error {
	_, err := b.Get(1, false)
	return err
}

// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package iobuf

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

// shortReader yields one byte per call to exercise partial reads.
type shortReader struct {
	r io.Reader
}

func (s shortReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return s.r.Read(p)
}

func TestIOConduitRead(t *testing.T) {
	c := NewReaderConduit(strings.NewReader("abc"), 0, true)
	if c.BufferSize() != DefaultBufferSize {
		t.Errorf("default buffer size is %d", c.BufferSize())
	}
	if !c.IsTextual() {
		t.Error("textual flag lost")
	}
	dst := make([]byte, 8)
	if n := c.Read(dst); n != 3 || string(dst[:n]) != "abc" {
		t.Errorf("read produced %d bytes %q", n, dst[:n])
	}
	if n := c.Read(dst); n != Eof {
		t.Errorf("read at end of input produced %d, expected Eof", n)
	}
	// The write side is absent.
	if n := c.Write([]byte("x")); n != Eof {
		t.Errorf("write on a read-only conduit produced %d, expected Eof", n)
	}
}

func TestIOConduitWrite(t *testing.T) {
	var sink bytes.Buffer
	c := NewWriterConduit(&sink, 32, false)
	if n := c.Write([]byte("hello")); n != 5 {
		t.Errorf("write produced %d", n)
	}
	if sink.String() != "hello" {
		t.Errorf("sink holds %q", sink.String())
	}
	if n := c.Read(make([]byte, 4)); n != Eof {
		t.Errorf("read on a write-only conduit produced %d, expected Eof", n)
	}
}

func TestIOConduitFill(t *testing.T) {
	c := NewReaderConduit(shortReader{strings.NewReader("abcde")}, 16, false)
	dst := make([]byte, 4)
	if n := c.Fill(dst); n != 4 || string(dst) != "abcd" {
		t.Errorf("fill produced %d bytes %q", n, dst[:n])
	}
	// A short final fill returns what remained.
	if n := c.Fill(dst); n != 1 || dst[0] != 'e' {
		t.Errorf("final fill produced %d bytes", n)
	}
	if n := c.Fill(dst); n != Eof {
		t.Errorf("fill past end of input produced %d, expected Eof", n)
	}
}

func TestIOConduitFlush(t *testing.T) {
	var sink bytes.Buffer
	c := NewWriterConduit(&sink, 8, false)
	if !c.Flush([]byte("all of it")) {
		t.Error("flush refused a healthy writer")
	}
	if sink.String() != "all of it" {
		t.Errorf("sink holds %q", sink.String())
	}
	r := NewReaderConduit(strings.NewReader(""), 8, false)
	if r.Flush([]byte("x")) {
		t.Error("flush on a read-only conduit claimed success")
	}
	if !r.Flush(nil) {
		t.Error("empty flush should succeed trivially")
	}
}

func TestBufferOverIOPipe(t *testing.T) {
	// A buffer writing through a conduit into a second buffer reading
	// through one: the round trip preserves bytes.
	var wire bytes.Buffer
	out := New(8).Attach(NewWriterConduit(&wire, 8, false))
	payload := []byte("0123456789abcdef")
	if err := out.Append(payload); err != nil {
		t.Fatal(err)
	}
	if err := out.Flush(); err != nil {
		t.Fatal(err)
	}
	in := NewConduit(NewReaderConduit(&wire, 8, false))
	got := make([]byte, len(payload))
	if n := in.GetInto(got); n != len(payload) {
		t.Fatalf("read back %d bytes, expected %d", n, len(payload))
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("round trip produced %q", got)
	}
}

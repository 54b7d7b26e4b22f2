// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package iobuf

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

// tokenScanner records the token preceding each matched delimiter, the way
// callers are expected to use Next.
func tokenScanner(delim byte, token *[]byte) Scanner {
	return func(window []byte) int {
		if i := bytes.IndexByte(window, delim); i >= 0 {
			*token = window[:i]
			return i + 1
		}
		return Eof
	}
}

func TestNextMemoryTokens(t *testing.T) {
	b := New(64)
	b.Append([]byte("foo\nbar\nbaz"))
	var token []byte
	scan := tokenScanner('\n', &token)
	var tokens []string
	for {
		ok, err := b.Next(scan)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		tokens = append(tokens, string(token))
	}
	if diff := pretty.Compare(tokens, []string{"foo", "bar"}); diff != "" {
		t.Errorf("tokens differ: (-got +want)\n%s", diff)
	}
	// The unterminated remainder was skipped by the failed scan.
	if b.Readable() != 0 {
		t.Errorf("readable is %d after the final scan, expected 0", b.Readable())
	}
}

func TestNextNeverMatches(t *testing.T) {
	b := New(64)
	b.Append([]byte("no delimiters here"))
	ok, err := b.Next(ScanDelim(';'))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("scan reported a match in delimiter-free content")
	}
	if b.Readable() != 0 {
		t.Errorf("readable is %d, expected the remainder to be skipped", b.Readable())
	}
}

func TestNextRefillsAcrossChunks(t *testing.T) {
	// Tokens arrive split across conduit reads; Next compacts and refills
	// until each delimiter shows up.
	c := &testConduit{src: []byte("alpha\nbeta\ngamma\n"), step: 4, size: 64}
	b := NewConduit(c)
	var token []byte
	scan := tokenScanner('\n', &token)
	var tokens []string
	for {
		ok, err := b.Next(scan)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		tokens = append(tokens, string(token))
	}
	if diff := pretty.Compare(tokens, []string{"alpha", "beta", "gamma"}); diff != "" {
		t.Errorf("tokens differ: (-got +want)\n%s", diff)
	}
}

func TestNextTokenTooLarge(t *testing.T) {
	c := &testConduit{src: bytes.Repeat([]byte("x"), 64), size: 16}
	b := NewConduit(c)
	_, err := b.Next(ScanLine)
	if !errors.Is(err, ErrTokenTooLarge) {
		t.Errorf("oversized token returned %v", err)
	}
}

func TestNextTrailingRemainderWithConduit(t *testing.T) {
	c := &testConduit{src: []byte("one\ntail"), size: 32}
	b := NewConduit(c)
	if ok, err := b.Next(ScanLine); err != nil || !ok {
		t.Fatalf("first token: ok=%t err=%v", ok, err)
	}
	ok, err := b.Next(ScanLine)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unterminated tail reported as a token")
	}
	if b.Readable() != 0 {
		t.Errorf("readable is %d after end of input, expected 0", b.Readable())
	}
}

func TestScanLine(t *testing.T) {
	if got := ScanLine([]byte("ab\ncd")); got != 3 {
		t.Errorf("ScanLine consumed %d bytes, expected 3", got)
	}
	if got := ScanLine([]byte("abcd")); got != Eof {
		t.Errorf("ScanLine without newline returned %d, expected Eof", got)
	}
}

func TestScanDelimWithReader(t *testing.T) {
	// Scanners compose with the io adapter the same way.
	r := strings.NewReader("k=v;x=y;")
	b := NewConduit(NewReaderConduit(r, 8, true))
	var token []byte
	scan := tokenScanner(';', &token)
	var tokens []string
	for {
		ok, err := b.Next(scan)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		tokens = append(tokens, string(token))
	}
	if diff := pretty.Compare(tokens, []string{"k=v", "x=y"}); diff != "" {
		t.Errorf("tokens differ: (-got +want)\n%s", diff)
	}
}

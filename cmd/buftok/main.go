// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// buftok tokenises a byte stream and reports token statistics.
//
// The stream is read through an iobuf.Buffer bound to a conduit over a
// file, stdin, or a TCP endpoint, and split with a delimiter scanner. The
// tool prints the total token count and the number of distinct tokens.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/aristanetworks/gocore/hashset"
	"github.com/aristanetworks/gocore/iobuf"

	"github.com/aristanetworks/glog"
	"github.com/cenkalti/backoff/v4"
)

func exitWithError(s string) {
	fmt.Fprintln(os.Stderr, s)
	os.Exit(1)
}

func main() {
	cfgPath := flag.String("config", "", "Path to a YAML config file")
	source := flag.String("source", "", "Input source: file path, - for stdin, or tcp://host:port")
	delim := flag.String("delim", "", "Single-byte token delimiter (default newline)")
	bufferSize := flag.Int("buffersize", 0, "Conduit buffer size in bytes")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		exitWithError(err.Error())
	}
	if *source != "" {
		cfg.Source = *source
	}
	if *delim != "" {
		cfg.Delim = *delim
	}
	if *bufferSize != 0 {
		cfg.BufferSize = *bufferSize
	}
	if cfg.Source == "" {
		exitWithError("no input source; use -source or a config file")
	}
	d, err := cfg.delimiter()
	if err != nil {
		exitWithError(err.Error())
	}

	conduit, closer, err := openSource(cfg)
	if err != nil {
		glog.Fatal(err)
	}
	if closer != nil {
		defer closer.Close()
	}

	total, distinct, err := tokenise(iobuf.NewConduit(conduit), d)
	if err != nil {
		glog.Fatalf("tokenising %s: %s", cfg.Source, err)
	}
	fmt.Printf("%d tokens, %d distinct\n", total, distinct)
}

// openSource turns the configured source into a conduit. TCP endpoints are
// dialed with exponential backoff so a slow-starting peer doesn't fail the
// run.
func openSource(cfg *config) (iobuf.Conduit, io.Closer, error) {
	switch {
	case cfg.Source == "-":
		return iobuf.NewReaderConduit(os.Stdin, cfg.BufferSize, cfg.Textual), nil, nil
	case strings.HasPrefix(cfg.Source, "tcp://"):
		addr := strings.TrimPrefix(cfg.Source, "tcp://")
		var conn net.Conn
		bo := backoff.NewExponentialBackOff()
		bo.MaxElapsedTime = time.Minute
		err := backoff.Retry(func() error {
			var err error
			if conn, err = net.Dial("tcp", addr); err != nil {
				glog.Infof("dial %s failed, retrying: %s", addr, err)
			}
			return err
		}, bo)
		if err != nil {
			return nil, nil, err
		}
		glog.Infof("connected to %s", addr)
		return iobuf.NewIOConduit(conn, cfg.BufferSize, cfg.Textual), conn, nil
	default:
		f, err := os.Open(cfg.Source)
		if err != nil {
			return nil, nil, err
		}
		return iobuf.NewReaderConduit(f, cfg.BufferSize, cfg.Textual), f, nil
	}
}

// tokenise drives the buffer's scanner loop, counting every token and the
// distinct ones.
func tokenise(b *iobuf.Buffer, delim byte) (total, distinct int, err error) {
	seen := hashset.NewStrings()
	var token []byte
	scan := func(window []byte) int {
		if i := bytes.IndexByte(window, delim); i >= 0 {
			token = window[:i]
			return i + 1
		}
		return iobuf.Eof
	}
	for {
		ok, err := b.Next(scan)
		if err != nil {
			return total, seen.Size(), err
		}
		if !ok {
			glog.V(1).Infof("end of input after %d tokens", total)
			return total, seen.Size(), nil
		}
		total++
		seen.Add(string(token))
	}
}

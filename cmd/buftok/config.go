// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// config drives buftok. Source, Delim and BufferSize can also be set by
// flag; flags win over the file. Textual is set only by the file.
type config struct {
	// Source is a file path, "-" for stdin, or tcp://host:port.
	Source string `yaml:"source"`
	// Delim is the single-byte token delimiter.
	Delim string `yaml:"delim,omitempty"`
	// BufferSize overrides the conduit's preferred buffer size.
	BufferSize int `yaml:"buffer-size,omitempty"`
	// Textual marks the stream as text.
	Textual bool `yaml:"textual,omitempty"`
}

func loadConfig(path string) (*config, error) {
	cfg := &config{Delim: "\n", Textual: true}
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %s", path, err)
	}
	return cfg, nil
}

func (c *config) delimiter() (byte, error) {
	if len(c.Delim) != 1 {
		return 0, fmt.Errorf("delimiter must be a single byte, got %q", c.Delim)
	}
	return c.Delim[0], nil
}

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package coproc

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Snapshot is a Reader backed by recorded register values, keyed by register
// name. Registers missing from the snapshot read as zero. A Snapshot is never
// modified after it is built, so long-running readers such as the exporter
// can replay it indefinitely.
type Snapshot struct {
	values map[string]uint32
}

// NewSnapshot returns a Snapshot holding a copy of values.
func NewSnapshot(values map[string]uint32) *Snapshot {
	s := &Snapshot{values: make(map[string]uint32, len(values))}
	for name, value := range values {
		s.values[name] = value
	}
	return s
}

// ParseSnapshot parses a YAML mapping of register name to value, e.g.
//
//	midr: 0x410fd034
//	ctr: 0x84448004
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var values map[string]uint32
	if err := yaml.UnmarshalStrict(data, &values); err != nil {
		return nil, errors.Wrap(err, "failed to parse register snapshot")
	}
	var unknown []string
	for name := range values {
		if _, ok := Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown register(s) in snapshot: %s", strings.Join(unknown, ", "))
	}
	return NewSnapshot(values), nil
}

// LoadSnapshot reads and parses a snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read register snapshot %s", path)
	}
	return ParseSnapshot(data)
}

func (s *Snapshot) Read(reg Register) uint32 {
	return s.values[reg.Name]
}

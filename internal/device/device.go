// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package device exposes an identification record through open, read and
// close calls. Only one handle may be open at a time; every read captures
// the registers again and returns the record from its first byte.
package device

import (
	"log/slog"
	"sync/atomic"

	"cpuidg/internal/coproc"
	"cpuidg/internal/cpuid"

	"github.com/pkg/errors"
)

var (
	// ErrBusy is returned by Open while another handle is open.
	ErrBusy = errors.New("device busy")
	// ErrUnsupportedArch is returned by Native on architectures without an
	// identification record.
	ErrUnsupportedArch = errors.New("no identification record for this architecture")
)

// File is an open handle on a Node.
type File interface {
	// Read captures the record and copies up to length bytes of it, from
	// offset zero, into dst. It returns the number of bytes copied.
	Read(dst Destination, length int) int
	// Close gives up admission. It always succeeds.
	Close() error
}

// Node is the device surface shared by both record variants.
type Node interface {
	Open() (File, error)
	Size() int
	Arch() string
	Layout() []cpuid.Field
}

// Device owns one record of variant R and the gate that guards it. The
// record is not locked: the gate keeps reads to a single handle, so any
// change that admits more than one reader has to protect the record before
// capture.
type Device[R cpuid.Record] struct {
	gate    Gate
	record  R
	scratch []byte
	capture func(*R)
	arch    string
	layout  []cpuid.Field
}

// New32 returns a 32-bit device that captures through reader.
func New32(reader coproc.Reader) *Device[cpuid.Record32] {
	return &Device[cpuid.Record32]{
		capture: func(rec *cpuid.Record32) { cpuid.Capture32(reader, rec) },
		arch:    cpuid.Arch32,
		layout:  cpuid.Layout32(),
	}
}

// New64 returns a 64-bit device. Its capture reads no registers.
func New64() *Device[cpuid.Record64] {
	return &Device[cpuid.Record64]{
		capture: cpuid.Capture64,
		arch:    cpuid.Arch64,
		layout:  cpuid.Layout64(),
	}
}

// Open admits the caller or fails with ErrBusy.
func (d *Device[R]) Open() (File, error) {
	if !d.gate.Acquire() {
		slog.Debug("device open rejected", slog.String("arch", d.arch))
		return nil, ErrBusy
	}
	slog.Debug("device opened", slog.String("arch", d.arch))
	return &handle[R]{dev: d}, nil
}

// Size returns the serialized record size.
func (d *Device[R]) Size() int {
	return cpuid.Size[R]()
}

func (d *Device[R]) Arch() string {
	return d.arch
}

func (d *Device[R]) Layout() []cpuid.Field {
	return append([]cpuid.Field(nil), d.layout...)
}

// Busy reports whether a handle is currently open.
func (d *Device[R]) Busy() bool {
	return d.gate.Held()
}

func (d *Device[R]) read(dst Destination, length int) int {
	d.capture(&d.record)
	var err error
	d.scratch, err = cpuid.Append(d.scratch[:0], &d.record)
	if err != nil {
		slog.Error("failed to serialize record", slog.String("arch", d.arch), slog.String("error", err.Error()))
		return 0
	}
	n := transfer(dst, d.scratch, length)
	slog.Debug("device read", slog.String("arch", d.arch), slog.Int("requested", length), slog.Int("transferred", n))
	return n
}

type handle[R cpuid.Record] struct {
	dev    *Device[R]
	closed atomic.Bool
}

func (h *handle[R]) Read(dst Destination, length int) int {
	if h.closed.Load() {
		return 0
	}
	return h.dev.read(dst, length)
}

func (h *handle[R]) Close() error {
	if h.closed.CompareAndSwap(false, true) {
		h.dev.gate.Release()
		slog.Debug("device closed", slog.String("arch", h.dev.arch))
	}
	return nil
}

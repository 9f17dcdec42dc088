// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package device

import "io"

// Destination is the caller-owned target of a read. CopyOut copies as much
// of src as it can and returns the number of bytes it could not accept.
type Destination interface {
	CopyOut(src []byte) (notCopied int)
}

// Buffer is a Destination backed by a byte slice. Bytes past its length
// count as not copied.
type Buffer []byte

func (b Buffer) CopyOut(src []byte) int {
	return len(src) - copy(b, src)
}

// WriterDestination adapts an io.Writer. A write error or short write is
// reported as uncopied bytes.
type WriterDestination struct {
	W   io.Writer
	Err error // first write error, if any
}

func (d *WriterDestination) CopyOut(src []byte) int {
	n, err := d.W.Write(src)
	if err != nil && d.Err == nil {
		d.Err = err
	}
	if n < 0 {
		n = 0
	}
	if n > len(src) {
		n = len(src)
	}
	return len(src) - n
}

// clampLength bounds a requested length to [0, size].
func clampLength(length, size int) int {
	if length < 0 {
		return 0
	}
	if length > size {
		return size
	}
	return length
}

// transfer copies the first n bytes of record to dst and returns how many
// were accepted.
func transfer(dst Destination, record []byte, length int) int {
	n := clampLength(length, len(record))
	if n == 0 {
		return 0
	}
	notCopied := dst.CopyOut(record[:n])
	if notCopied < 0 {
		notCopied = 0
	}
	if notCopied > n {
		notCopied = n
	}
	return n - notCopied
}

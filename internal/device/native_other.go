// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

//go:build !arm && !arm64

package device

// NativeArch is empty: there is no record variant for this architecture.
const NativeArch = ""

// Native always fails on this architecture.
func Native() (Node, error) {
	return nil, ErrUnsupportedArch
}

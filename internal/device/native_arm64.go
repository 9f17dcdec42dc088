// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

//go:build arm64

package device

import "cpuidg/internal/cpuid"

// NativeArch is the record variant built into this binary.
const NativeArch = cpuid.Arch64

// Native returns the 64-bit device.
func Native() (Node, error) {
	return New64(), nil
}

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

//go:build arm

package device

import (
	"cpuidg/internal/coproc"
	"cpuidg/internal/cpuid"
)

// NativeArch is the record variant built into this binary.
const NativeArch = cpuid.Arch32

// Native returns a device reading CP15 on the running CPU.
func Native() (Node, error) {
	return New32(coproc.Hardware{}), nil
}

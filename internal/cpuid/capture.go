// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package cpuid

import "cpuidg/internal/coproc"

// Capture32 overwrites rec with a fresh read of every catalog register.
// MIDR is read first; the optional registers are read only when its part
// number is an extended part and are left zero otherwise.
func Capture32(r coproc.Reader, rec *Record32) {
	*rec = Record32{}
	rec.MIDR = r.Read(coproc.MIDR)
	extended := Extended(rec.MIDR)
	for _, entry := range catalog32 {
		if entry.Register == coproc.MIDR {
			continue
		}
		if entry.Optional && !extended {
			continue
		}
		*entry.field(rec) = r.Read(entry.Register)
	}
}

// Capture64 resets rec to zero. No AArch64 registers are read: the register
// set for this variant has not been defined, so the record stays zero-filled.
func Capture64(rec *Record64) {
	*rec = Record64{}
}

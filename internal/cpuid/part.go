// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package cpuid

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// PartMask selects the implementer and primary part number fields of MIDR.
const PartMask uint32 = 0xff00fff0

// Known parts, already masked with PartMask.
const (
	PartARM1176     uint32 = 0x4100b760
	PartCortexA53   uint32 = 0x4100d030
	partUnknownName        = "unknown"
)

var partNames = map[uint32]string{
	PartARM1176:   "ARM1176",
	PartCortexA53: "Cortex-A53",
}

// extendedParts are the parts whose optional registers are read.
var extendedParts = mapset.NewThreadUnsafeSet(PartCortexA53)

// PartNumber returns midr masked down to its part number.
func PartNumber(midr uint32) uint32 {
	return midr & PartMask
}

// Extended reports whether the optional registers are read for midr.
func Extended(midr uint32) bool {
	return extendedParts.Contains(PartNumber(midr))
}

// ExtendedParts returns the masked part numbers that enable optional registers.
func ExtendedParts() []uint32 {
	return extendedParts.ToSlice()
}

// PartName returns a display name for the part in midr.
func PartName(midr uint32) string {
	if name, ok := partNames[PartNumber(midr)]; ok {
		return name
	}
	return partUnknownName
}

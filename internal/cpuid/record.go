// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package cpuid

// Record32 is the identification record for 32-bit ARM. Field order and
// widths are an external contract and must not change.
type Record32 struct {
	MIDR   uint32
	CTR    uint32
	TCMTR  uint32
	TLBTR  uint32
	MPIDR  uint32 // extended parts only
	REVIDR uint32 // extended parts only

	IDPFR0  uint32
	IDPFR1  uint32
	IDDFR0  uint32
	IDAFR0  uint32
	IDMMFR0 uint32
	IDMMFR1 uint32
	IDMMFR2 uint32
	IDMMFR3 uint32

	IDISAR0 uint32
	IDISAR1 uint32
	IDISAR2 uint32
	IDISAR3 uint32
	IDISAR4 uint32
	IDISAR5 uint32

	CCSIDR uint32 // extended parts only
	CLIDR  uint32 // extended parts only
	AIDR   uint32 // extended parts only

	CSSELR uint32 // extended parts only
}

// Record64 is the identification record for 64-bit ARM. It follows C natural
// alignment; the blank fields are the padding a C compiler inserts before
// each 8-byte member, so encoding/binary reproduces the same bytes.
type Record64 struct {
	MIDR   uint32
	_      uint32
	MPIDR  uint64
	REVIDR uint32

	IDPFR0  uint32
	IDPFR1  uint32
	IDDFR0  uint32
	IDAFR0  uint32
	IDMMFR0 uint32
	IDMMFR1 uint32
	IDMMFR2 uint32
	IDMMFR3 uint32

	IDISAR0 uint32
	IDISAR1 uint32
	IDISAR2 uint32
	IDISAR3 uint32
	IDISAR4 uint32
	IDISAR5 uint32
	_       uint32

	IDAA64PFR0  uint64
	IDAA64PFR1  uint64
	IDAA64DFR0  uint64
	IDAA64DFR1  uint64
	IDAA64AFR0  uint64
	IDAA64AFR1  uint64
	IDAA64ISAR0 uint64
	IDAA64ISAR1 uint64
	IDAA64MMFR0 uint64
	IDAA64MMFR1 uint64

	CCSIDR uint32
	_      uint32
	CLIDR  uint64
	AIDR   uint32
	CSSELR uint32
	CTR    uint32
	DCZID  uint32
}

// Record sizes in bytes as seen by readers.
const (
	Record32Size = 96
	Record64Size = 192
)

// Record is satisfied by the two record variants.
type Record interface {
	Record32 | Record64
}

// Package coproc provides the privileged register-read primitives used to
// capture ARM identification registers. Everything above this package works
// against the Reader interface and never touches the hardware directly.
package coproc

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import "fmt"

// Register identifies a CP15 identification register by its MRC operands.
// All registers in this package live under CRn c0.
type Register struct {
	Name string
	Op1  uint8
	CRn  uint8
	CRm  uint8
	Op2  uint8
}

func (r Register) String() string {
	return fmt.Sprintf("%s (p15, %d, c%d, c%d, %d)", r.Name, r.Op1, r.CRn, r.CRm, r.Op2)
}

// Reader reads one coprocessor register. Implementations must not fail:
// an unsupported register on real hardware is a fatal trap, not an error.
type Reader interface {
	Read(reg Register) uint32
}

// CP15 identification registers read by the 32-bit capture.
var (
	MIDR   = Register{Name: "midr", Op1: 0, CRm: 0, Op2: 0}
	CTR    = Register{Name: "ctr", Op1: 0, CRm: 0, Op2: 1}
	TCMTR  = Register{Name: "tcmtr", Op1: 0, CRm: 0, Op2: 2}
	TLBTR  = Register{Name: "tlbtr", Op1: 0, CRm: 0, Op2: 3}
	MPIDR  = Register{Name: "mpidr", Op1: 0, CRm: 0, Op2: 5}
	REVIDR = Register{Name: "revidr", Op1: 0, CRm: 0, Op2: 6}

	IDPFR0  = Register{Name: "id_pfr0", Op1: 0, CRm: 1, Op2: 0}
	IDPFR1  = Register{Name: "id_pfr1", Op1: 0, CRm: 1, Op2: 1}
	IDDFR0  = Register{Name: "id_dfr0", Op1: 0, CRm: 1, Op2: 2}
	IDAFR0  = Register{Name: "id_afr0", Op1: 0, CRm: 1, Op2: 3}
	IDMMFR0 = Register{Name: "id_mmfr0", Op1: 0, CRm: 1, Op2: 4}
	IDMMFR1 = Register{Name: "id_mmfr1", Op1: 0, CRm: 1, Op2: 5}
	IDMMFR2 = Register{Name: "id_mmfr2", Op1: 0, CRm: 1, Op2: 6}
	IDMMFR3 = Register{Name: "id_mmfr3", Op1: 0, CRm: 1, Op2: 7}

	IDISAR0 = Register{Name: "id_isar0", Op1: 0, CRm: 2, Op2: 0}
	IDISAR1 = Register{Name: "id_isar1", Op1: 0, CRm: 2, Op2: 1}
	IDISAR2 = Register{Name: "id_isar2", Op1: 0, CRm: 2, Op2: 2}
	IDISAR3 = Register{Name: "id_isar3", Op1: 0, CRm: 2, Op2: 3}
	IDISAR4 = Register{Name: "id_isar4", Op1: 0, CRm: 2, Op2: 4}
	IDISAR5 = Register{Name: "id_isar5", Op1: 0, CRm: 2, Op2: 5}

	CCSIDR = Register{Name: "ccsidr", Op1: 1, CRm: 0, Op2: 0}
	CLIDR  = Register{Name: "clidr", Op1: 1, CRm: 0, Op2: 1}
	AIDR   = Register{Name: "aidr", Op1: 1, CRm: 0, Op2: 7}

	CSSELR = Register{Name: "csselr", Op1: 2, CRm: 0, Op2: 0}
)

// Registers lists every register known to this package in capture order.
var Registers = []Register{
	MIDR, CTR, TCMTR, TLBTR, MPIDR, REVIDR,
	IDPFR0, IDPFR1, IDDFR0, IDAFR0, IDMMFR0, IDMMFR1, IDMMFR2, IDMMFR3,
	IDISAR0, IDISAR1, IDISAR2, IDISAR3, IDISAR4, IDISAR5,
	CCSIDR, CLIDR, AIDR,
	CSSELR,
}

// Lookup returns the register with the given name.
func Lookup(name string) (Register, bool) {
	for _, reg := range Registers {
		if reg.Name == name {
			return reg, true
		}
	}
	return Register{}, false
}

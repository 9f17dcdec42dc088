// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

//go:build arm

package coproc

// Implemented in hardware_arm.s.
func readMIDR() uint32
func readCTR() uint32
func readTCMTR() uint32
func readTLBTR() uint32
func readMPIDR() uint32
func readREVIDR() uint32
func readIDPFR0() uint32
func readIDPFR1() uint32
func readIDDFR0() uint32
func readIDAFR0() uint32
func readIDMMFR0() uint32
func readIDMMFR1() uint32
func readIDMMFR2() uint32
func readIDMMFR3() uint32
func readIDISAR0() uint32
func readIDISAR1() uint32
func readIDISAR2() uint32
func readIDISAR3() uint32
func readIDISAR4() uint32
func readIDISAR5() uint32
func readCCSIDR() uint32
func readCLIDR() uint32
func readAIDR() uint32
func readCSSELR() uint32

// Hardware reads CP15 registers with MRC on the executing CPU. The caller must
// be privileged to access them; from user space on most kernels the first
// read raises SIGILL and the process dies.
type Hardware struct{}

var hardwareReads = map[Register]func() uint32{
	MIDR:    readMIDR,
	CTR:     readCTR,
	TCMTR:   readTCMTR,
	TLBTR:   readTLBTR,
	MPIDR:   readMPIDR,
	REVIDR:  readREVIDR,
	IDPFR0:  readIDPFR0,
	IDPFR1:  readIDPFR1,
	IDDFR0:  readIDDFR0,
	IDAFR0:  readIDAFR0,
	IDMMFR0: readIDMMFR0,
	IDMMFR1: readIDMMFR1,
	IDMMFR2: readIDMMFR2,
	IDMMFR3: readIDMMFR3,
	IDISAR0: readIDISAR0,
	IDISAR1: readIDISAR1,
	IDISAR2: readIDISAR2,
	IDISAR3: readIDISAR3,
	IDISAR4: readIDISAR4,
	IDISAR5: readIDISAR5,
	CCSIDR:  readCCSIDR,
	CLIDR:   readCLIDR,
	AIDR:    readAIDR,
	CSSELR:  readCSSELR,
}

// Read executes the MRC for reg. There is no instruction for registers
// outside the catalog, so asking for one panics.
func (Hardware) Read(reg Register) uint32 {
	read, ok := hardwareReads[reg]
	if !ok {
		panic("coproc: no MRC encoding for " + reg.String())
	}
	return read()
}

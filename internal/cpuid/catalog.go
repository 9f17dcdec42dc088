// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package cpuid describes the ARM identification registers, captures them
// into fixed-layout records and decodes those records by field.
package cpuid

import "cpuidg/internal/coproc"

// Bank groups the registers that share coprocessor operands other than Op2.
type Bank string

const (
	BankMainID         Bank = "c0,c0"       // op1=0 CRm=c0
	BankFeature        Bank = "c0,c1"       // op1=0 CRm=c1
	BankInstructionSet Bank = "c0,c2"       // op1=0 CRm=c2
	BankCacheGeometry  Bank = "op1=1 c0,c0" // cache size/level, auxiliary ID
	BankCacheSelect    Bank = "op1=2 c0,c0" // cache size selection

	// AArch64 banks name the register families; they carry no read operands.
	BankAA64ID          Bank = "aarch64 id"
	BankAA64AArch32     Bank = "aarch64 aarch32 feature"
	BankAA64Feature     Bank = "aarch64 feature"
	BankAA64CacheConfig Bank = "aarch64 cache"
)

// Entry32 is one register of the 32-bit catalog and where it lands in a
// Record32.
type Entry32 struct {
	Register coproc.Register
	Bank     Bank
	Optional bool
	field    func(*Record32) *uint32
}

// catalog32 is in capture order, which is also record order.
var catalog32 = []Entry32{
	{coproc.MIDR, BankMainID, false, func(r *Record32) *uint32 { return &r.MIDR }},
	{coproc.CTR, BankMainID, false, func(r *Record32) *uint32 { return &r.CTR }},
	{coproc.TCMTR, BankMainID, false, func(r *Record32) *uint32 { return &r.TCMTR }},
	{coproc.TLBTR, BankMainID, false, func(r *Record32) *uint32 { return &r.TLBTR }},
	{coproc.MPIDR, BankMainID, true, func(r *Record32) *uint32 { return &r.MPIDR }},
	{coproc.REVIDR, BankMainID, true, func(r *Record32) *uint32 { return &r.REVIDR }},

	{coproc.IDPFR0, BankFeature, false, func(r *Record32) *uint32 { return &r.IDPFR0 }},
	{coproc.IDPFR1, BankFeature, false, func(r *Record32) *uint32 { return &r.IDPFR1 }},
	{coproc.IDDFR0, BankFeature, false, func(r *Record32) *uint32 { return &r.IDDFR0 }},
	{coproc.IDAFR0, BankFeature, false, func(r *Record32) *uint32 { return &r.IDAFR0 }},
	{coproc.IDMMFR0, BankFeature, false, func(r *Record32) *uint32 { return &r.IDMMFR0 }},
	{coproc.IDMMFR1, BankFeature, false, func(r *Record32) *uint32 { return &r.IDMMFR1 }},
	{coproc.IDMMFR2, BankFeature, false, func(r *Record32) *uint32 { return &r.IDMMFR2 }},
	{coproc.IDMMFR3, BankFeature, false, func(r *Record32) *uint32 { return &r.IDMMFR3 }},

	{coproc.IDISAR0, BankInstructionSet, false, func(r *Record32) *uint32 { return &r.IDISAR0 }},
	{coproc.IDISAR1, BankInstructionSet, false, func(r *Record32) *uint32 { return &r.IDISAR1 }},
	{coproc.IDISAR2, BankInstructionSet, false, func(r *Record32) *uint32 { return &r.IDISAR2 }},
	{coproc.IDISAR3, BankInstructionSet, false, func(r *Record32) *uint32 { return &r.IDISAR3 }},
	{coproc.IDISAR4, BankInstructionSet, false, func(r *Record32) *uint32 { return &r.IDISAR4 }},
	{coproc.IDISAR5, BankInstructionSet, false, func(r *Record32) *uint32 { return &r.IDISAR5 }},

	{coproc.CCSIDR, BankCacheGeometry, true, func(r *Record32) *uint32 { return &r.CCSIDR }},
	{coproc.CLIDR, BankCacheGeometry, true, func(r *Record32) *uint32 { return &r.CLIDR }},
	{coproc.AIDR, BankCacheGeometry, true, func(r *Record32) *uint32 { return &r.AIDR }},

	{coproc.CSSELR, BankCacheSelect, true, func(r *Record32) *uint32 { return &r.CSSELR }},
}

// Catalog32 returns the 32-bit catalog in capture order.
func Catalog32() []Entry32 {
	out := make([]Entry32, len(catalog32))
	copy(out, catalog32)
	return out
}

// Entry64 names an AArch64 system register and its record field. The
// 64-bit capture does not read these yet.
type Entry64 struct {
	Name     string // record field name
	SysReg   string // architectural register name
	Bank     Bank
	Width    int
	Optional bool
}

var catalog64 = []Entry64{
	{"midr", "MIDR_EL1", BankAA64ID, 4, false},
	{"mpidr", "MPIDR_EL1", BankAA64ID, 8, false},
	{"revidr", "REVIDR_EL1", BankAA64ID, 4, false},

	{"id_pfr0", "ID_PFR0_EL1", BankAA64AArch32, 4, false},
	{"id_pfr1", "ID_PFR1_EL1", BankAA64AArch32, 4, false},
	{"id_dfr0", "ID_DFR0_EL1", BankAA64AArch32, 4, false},
	{"id_afr0", "ID_AFR0_EL1", BankAA64AArch32, 4, false},
	{"id_mmfr0", "ID_MMFR0_EL1", BankAA64AArch32, 4, false},
	{"id_mmfr1", "ID_MMFR1_EL1", BankAA64AArch32, 4, false},
	{"id_mmfr2", "ID_MMFR2_EL1", BankAA64AArch32, 4, false},
	{"id_mmfr3", "ID_MMFR3_EL1", BankAA64AArch32, 4, false},
	{"id_isar0", "ID_ISAR0_EL1", BankAA64AArch32, 4, false},
	{"id_isar1", "ID_ISAR1_EL1", BankAA64AArch32, 4, false},
	{"id_isar2", "ID_ISAR2_EL1", BankAA64AArch32, 4, false},
	{"id_isar3", "ID_ISAR3_EL1", BankAA64AArch32, 4, false},
	{"id_isar4", "ID_ISAR4_EL1", BankAA64AArch32, 4, false},
	{"id_isar5", "ID_ISAR5_EL1", BankAA64AArch32, 4, false},

	{"id_aa64pfr0", "ID_AA64PFR0_EL1", BankAA64Feature, 8, false},
	{"id_aa64pfr1", "ID_AA64PFR1_EL1", BankAA64Feature, 8, false},
	{"id_aa64dfr0", "ID_AA64DFR0_EL1", BankAA64Feature, 8, false},
	{"id_aa64dfr1", "ID_AA64DFR1_EL1", BankAA64Feature, 8, false},
	{"id_aa64afr0", "ID_AA64AFR0_EL1", BankAA64Feature, 8, false},
	{"id_aa64afr1", "ID_AA64AFR1_EL1", BankAA64Feature, 8, false},
	{"id_aa64isar0", "ID_AA64ISAR0_EL1", BankAA64Feature, 8, false},
	{"id_aa64isar1", "ID_AA64ISAR1_EL1", BankAA64Feature, 8, false},
	{"id_aa64mmfr0", "ID_AA64MMFR0_EL1", BankAA64Feature, 8, false},
	{"id_aa64mmfr1", "ID_AA64MMFR1_EL1", BankAA64Feature, 8, false},

	{"ccsidr", "CCSIDR_EL1", BankAA64CacheConfig, 4, true},
	{"clidr", "CLIDR_EL1", BankAA64CacheConfig, 8, true},
	{"aidr", "AIDR_EL1", BankAA64CacheConfig, 4, true},
	{"csselr", "CSSELR_EL1", BankAA64CacheConfig, 4, true},
	{"ctr", "CTR_EL0", BankAA64CacheConfig, 4, false},
	{"dczid", "DCZID_EL0", BankAA64CacheConfig, 4, false},
}

// Catalog64 returns the 64-bit catalog in record order.
func Catalog64() []Entry64 {
	out := make([]Entry64, len(catalog64))
	copy(out, catalog64)
	return out
}

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package cpuid

import (
	"encoding/binary"
	"fmt"
)

// Architecture names of the two record variants.
const (
	Arch32 = "arm"
	Arch64 = "arm64"
)

// Field locates one register value inside a serialized record.
type Field struct {
	Name     string `json:"name" yaml:"name"`
	Register string `json:"register" yaml:"register"`
	Bank     Bank   `json:"bank" yaml:"bank"`
	Offset   int    `json:"offset" yaml:"offset"`
	Width    int    `json:"width" yaml:"width"`
	Optional bool   `json:"optional" yaml:"optional"`
}

// Value is a decoded field.
type Value struct {
	Field
	Value uint64
}

var (
	layout32 = buildLayout32()
	layout64 = buildLayout64()
)

func buildLayout32() []Field {
	fields := make([]Field, 0, len(catalog32))
	offset := 0
	for _, entry := range catalog32 {
		fields = append(fields, Field{
			Name:     entry.Register.Name,
			Register: fmt.Sprintf("p15, %d, c%d, c%d, %d", entry.Register.Op1, entry.Register.CRn, entry.Register.CRm, entry.Register.Op2),
			Bank:     entry.Bank,
			Offset:   offset,
			Width:    4,
			Optional: entry.Optional,
		})
		offset += 4
	}
	return fields
}

// buildLayout64 places the catalog fields with C natural alignment.
func buildLayout64() []Field {
	fields := make([]Field, 0, len(catalog64))
	offset := 0
	for _, entry := range catalog64 {
		if rem := offset % entry.Width; rem != 0 {
			offset += entry.Width - rem
		}
		fields = append(fields, Field{
			Name:     entry.Name,
			Register: entry.SysReg,
			Bank:     entry.Bank,
			Offset:   offset,
			Width:    entry.Width,
			Optional: entry.Optional,
		})
		offset += entry.Width
	}
	return fields
}

// Layout returns the field table for arch, either Arch32 or Arch64.
func Layout(arch string) ([]Field, error) {
	switch arch {
	case Arch32:
		return Layout32(), nil
	case Arch64:
		return Layout64(), nil
	}
	return nil, fmt.Errorf("unsupported architecture: %s", arch)
}

// Layout32 returns the Record32 field table.
func Layout32() []Field {
	return append([]Field(nil), layout32...)
}

// Layout64 returns the Record64 field table.
func Layout64() []Field {
	return append([]Field(nil), layout64...)
}

// Size returns the serialized size of record variant R.
func Size[R Record]() int {
	var rec R
	return binary.Size(&rec)
}

// Append serializes rec in native byte order, the layout readers of the
// device expect, and appends it to dst.
func Append[R Record](dst []byte, rec *R) ([]byte, error) {
	return binary.Append(dst, binary.NativeEndian, rec)
}

// Decode returns the fields of layout that lie entirely within data. A
// short read therefore decodes only its complete fields.
func Decode(layout []Field, data []byte) []Value {
	values := make([]Value, 0, len(layout))
	for _, field := range layout {
		end := field.Offset + field.Width
		if end > len(data) {
			continue
		}
		var v uint64
		switch field.Width {
		case 4:
			v = uint64(binary.NativeEndian.Uint32(data[field.Offset:end]))
		case 8:
			v = binary.NativeEndian.Uint64(data[field.Offset:end])
		default:
			continue
		}
		values = append(values, Value{Field: field, Value: v})
	}
	return values
}

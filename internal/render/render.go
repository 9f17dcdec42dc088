// Package render formats decoded identification records and record layouts
// as text, JSON, YAML, hex dumps, raw bytes or Excel workbooks.
package render

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strconv"

	"cpuidg/internal/cpuid"
)

const (
	FormatTxt  = "txt"
	FormatJson = "json"
	FormatYaml = "yaml"
	FormatXlsx = "xlsx"
	FormatHex  = "hex"
	FormatRaw  = "raw"
)

// TableFormats can render Tables.
var TableFormats = []string{FormatTxt, FormatJson, FormatYaml, FormatXlsx}

// RecordFormats can render a read: the table formats plus the bytes themselves.
var RecordFormats = append([]string{FormatRaw, FormatHex}, TableFormats...)

const noDataFound = "No data found."

// Field is one column (HasRows) or one name/value pair of a Table.
type Field struct {
	Name   string
	Values []string
}

// Table is a named set of fields.
type Table struct {
	Name        string
	HasRows     bool
	NoDataFound string
	Fields      []Field
}

// Table names.
const (
	SummaryTableName   = "Summary"
	RegistersTableName = "Registers"
	LayoutTableName    = "Layout"
)

// Summary describes one read.
type Summary struct {
	Arch        string
	RecordSize  int
	Requested   int
	Transferred int
}

// SummaryTable returns a name/value table describing a read.
func SummaryTable(s Summary) Table {
	return Table{
		Name: SummaryTableName,
		Fields: []Field{
			{Name: "Architecture", Values: []string{s.Arch}},
			{Name: "Record Size", Values: []string{strconv.Itoa(s.RecordSize)}},
			{Name: "Requested", Values: []string{strconv.Itoa(s.Requested)}},
			{Name: "Transferred", Values: []string{strconv.Itoa(s.Transferred)}},
		},
	}
}

// RegistersTable lists decoded register values, one row per field.
func RegistersTable(values []cpuid.Value) Table {
	t := Table{
		Name:        RegistersTableName,
		HasRows:     true,
		NoDataFound: "No complete register field was transferred.",
		Fields: []Field{
			{Name: "Field"},
			{Name: "Register"},
			{Name: "Offset"},
			{Name: "Value"},
		},
	}
	for _, v := range values {
		t.Fields[0].Values = append(t.Fields[0].Values, v.Name)
		t.Fields[1].Values = append(t.Fields[1].Values, v.Register)
		t.Fields[2].Values = append(t.Fields[2].Values, strconv.Itoa(v.Offset))
		t.Fields[3].Values = append(t.Fields[3].Values, formatValue(v.Value, v.Width))
	}
	return t
}

// LayoutTable describes a record layout, one row per field.
func LayoutTable(layout []cpuid.Field) Table {
	t := Table{
		Name:    LayoutTableName,
		HasRows: true,
		Fields: []Field{
			{Name: "Field"},
			{Name: "Register"},
			{Name: "Bank"},
			{Name: "Offset"},
			{Name: "Width"},
			{Name: "Optional"},
		},
	}
	for _, f := range layout {
		t.Fields[0].Values = append(t.Fields[0].Values, f.Name)
		t.Fields[1].Values = append(t.Fields[1].Values, f.Register)
		t.Fields[2].Values = append(t.Fields[2].Values, string(f.Bank))
		t.Fields[3].Values = append(t.Fields[3].Values, strconv.Itoa(f.Offset))
		t.Fields[4].Values = append(t.Fields[4].Values, strconv.Itoa(f.Width))
		t.Fields[5].Values = append(t.Fields[5].Values, strconv.FormatBool(f.Optional))
	}
	return t
}

func formatValue(v uint64, width int) string {
	return fmt.Sprintf("0x%0*x", width*2, v)
}

// Tables renders tables in one of the TableFormats.
func Tables(format string, tables []Table) ([]byte, error) {
	switch format {
	case FormatTxt:
		return createTextReport(tables), nil
	case FormatJson:
		return createJsonReport(tables)
	case FormatYaml:
		return createYamlReport(tables)
	case FormatXlsx:
		return createXlsxReport(tables)
	}
	return nil, fmt.Errorf("unsupported table format: %s", format)
}

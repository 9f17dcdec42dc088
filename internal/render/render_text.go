package render

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"encoding/hex"
	"fmt"
	"strings"
)

func createTextReport(tables []Table) []byte {
	var sb strings.Builder
	for _, t := range tables {
		sb.WriteString(fmt.Sprintf("%s\n", t.Name))
		sb.WriteString(strings.Repeat("=", len(t.Name)))
		sb.WriteString("\n")
		if len(t.Fields) == 0 || len(t.Fields[0].Values) == 0 {
			msg := noDataFound
			if t.NoDataFound != "" {
				msg = t.NoDataFound
			}
			sb.WriteString(msg + "\n\n")
			continue
		}
		sb.WriteString(textTable(t))
		sb.WriteString("\n")
	}
	return []byte(sb.String())
}

func textTable(t Table) string {
	var sb strings.Builder
	if t.HasRows {
		// column width is the longest of the heading and its values; the last column is not padded
		widths := make([]int, len(t.Fields))
		for i, field := range t.Fields {
			if i == len(t.Fields)-1 {
				continue
			}
			widths[i] = len(field.Name)
			for _, val := range field.Values {
				widths[i] = max(widths[i], len(val))
			}
		}
		columnSpacing := 3
		writeRow := func(cell func(i int, field Field) string) {
			var line strings.Builder
			for i, field := range t.Fields {
				line.WriteString(fmt.Sprintf("%-*s", widths[i]+columnSpacing, cell(i, field)))
			}
			sb.WriteString(strings.TrimRight(line.String(), " ") + "\n")
		}
		writeRow(func(_ int, field Field) string { return field.Name })
		writeRow(func(_ int, field Field) string { return strings.Repeat("-", len(field.Name)) })
		for row := range len(t.Fields[0].Values) {
			writeRow(func(_ int, field Field) string { return field.Values[row] })
		}
	} else {
		maxFieldNameLen := 0
		for _, field := range t.Fields {
			maxFieldNameLen = max(maxFieldNameLen, len(field.Name))
		}
		for _, field := range t.Fields {
			var value string
			if len(field.Values) > 0 {
				value = field.Values[0]
			}
			sb.WriteString(fmt.Sprintf("%s%-*s %s\n", field.Name, maxFieldNameLen-len(field.Name)+1, ":", value))
		}
	}
	return sb.String()
}

// HexDump renders data in the canonical hex+ASCII layout.
func HexDump(data []byte) []byte {
	return []byte(hex.Dump(data))
}

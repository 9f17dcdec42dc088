// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cpuidg/internal/cpuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"
)

func sampleValues() []cpuid.Value {
	layout := cpuid.Layout32()
	return []cpuid.Value{
		{Field: layout[0], Value: 0x410fd034},
		{Field: layout[1], Value: 0x84448004},
	}
}

func sampleTables() []Table {
	return []Table{
		SummaryTable(Summary{Arch: cpuid.Arch32, RecordSize: 96, Requested: 8, Transferred: 8}),
		RegistersTable(sampleValues()),
	}
}

func TestRegistersTable(t *testing.T) {
	table := RegistersTable(sampleValues())
	require.Len(t, table.Fields, 4)
	assert.Equal(t, []string{"midr", "ctr"}, table.Fields[0].Values)
	assert.Equal(t, []string{"0", "4"}, table.Fields[2].Values)
	assert.Equal(t, []string{"0x410fd034", "0x84448004"}, table.Fields[3].Values)
}

func TestFormatValueWidth(t *testing.T) {
	assert.Equal(t, "0x00000001", formatValue(1, 4))
	assert.Equal(t, "0x0000000000000001", formatValue(1, 8))
}

func TestTextReport(t *testing.T) {
	out, err := Tables(FormatTxt, sampleTables())
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "Summary\n=======\n")
	assert.Contains(t, text, "Architecture: arm\n")
	assert.Contains(t, text, "Transferred:  8\n")
	assert.Contains(t, text, "Registers\n=========\n")
	lines := strings.Split(text, "\n")
	var header string
	for i, line := range lines {
		if strings.HasPrefix(line, "Field") {
			header = line
			assert.True(t, strings.HasPrefix(lines[i+1], "-----"))
			assert.True(t, strings.HasPrefix(lines[i+2], "midr"))
			assert.True(t, strings.HasSuffix(lines[i+2], "0x410fd034"))
			break
		}
	}
	assert.NotEmpty(t, header)
}

func TestTextReportNoData(t *testing.T) {
	out, err := Tables(FormatTxt, []Table{RegistersTable(nil)})
	require.NoError(t, err)
	assert.Contains(t, string(out), "No complete register field was transferred.")
}

func TestJsonReport(t *testing.T) {
	out, err := Tables(FormatJson, sampleTables())
	require.NoError(t, err)
	var parsed map[string][]map[string]string
	require.NoError(t, json.Unmarshal(out, &parsed))
	require.Len(t, parsed[RegistersTableName], 2)
	assert.Equal(t, "ctr", parsed[RegistersTableName][1]["Field"])
	assert.Equal(t, "96", parsed[SummaryTableName][0]["Record Size"])
}

func TestJsonReportEmptyTable(t *testing.T) {
	out, err := Tables(FormatJson, []Table{RegistersTable(nil)})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Registers": []`)
}

func TestYamlReport(t *testing.T) {
	out, err := Tables(FormatYaml, []Table{LayoutTable(cpuid.Layout64())})
	require.NoError(t, err)
	var parsed map[string][]map[string]string
	require.NoError(t, yaml.Unmarshal(out, &parsed))
	rows := parsed[LayoutTableName]
	require.Len(t, rows, 33)
	assert.Equal(t, "mpidr", rows[1]["Field"])
	assert.Equal(t, "8", rows[1]["Offset"])
	assert.Equal(t, "MPIDR_EL1", rows[1]["Register"])
}

func TestXlsxReport(t *testing.T) {
	out, err := Tables(FormatXlsx, sampleTables())
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(xlsxSheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, SummaryTableName, v)
	v, err = f.GetCellValue(xlsxSheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "arm", v)
	rows, err := f.GetRows(xlsxSheetName)
	require.NoError(t, err)
	var found bool
	for _, r := range rows {
		if len(r) >= 5 && r[1] == "midr" {
			found = true
			assert.Equal(t, "0x410fd034", r[4])
		}
	}
	assert.True(t, found)
}

func TestUnsupportedTableFormat(t *testing.T) {
	_, err := Tables(FormatRaw, nil)
	assert.Error(t, err)
}

func TestHexDump(t *testing.T) {
	out := HexDump([]byte{0x34, 0xd0, 0x0f, 0x41})
	assert.True(t, strings.HasPrefix(string(out), "00000000  34 d0 0f 41"))
}

func TestRecordFormats(t *testing.T) {
	assert.Equal(t, []string{FormatRaw, FormatHex, FormatTxt, FormatJson, FormatYaml, FormatXlsx}, RecordFormats)
}

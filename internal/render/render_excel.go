package render

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bufio"
	"bytes"
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const xlsxSheetName = "Registers"

func cellName(col int, row int) (name string) {
	columnName, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return
	}
	name, err = excelize.JoinCellName(columnName, row)
	if err != nil {
		return
	}
	return
}

// getValueForCell stores plain decimal numbers as numbers so they sort and
// sum in a spreadsheet; everything else, hex included, stays text.
func getValueForCell(value string) any {
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return value
}

func renderXlsxTable(t Table, f *excelize.File, sheetName string, row *int) {
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	alignLeft, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "left",
		},
	})
	col := 1
	_ = f.SetCellValue(sheetName, cellName(col, *row), t.Name)
	_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), boldStyle)
	*row++
	if len(t.Fields) == 0 || len(t.Fields[0].Values) == 0 {
		msg := noDataFound
		if t.NoDataFound != "" {
			msg = t.NoDataFound
		}
		_ = f.SetCellValue(sheetName, cellName(col, *row), msg)
		*row += 2
		return
	}
	if t.HasRows {
		col = 2
		for _, field := range t.Fields {
			_ = f.SetCellValue(sheetName, cellName(col, *row), field.Name)
			_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), boldStyle)
			col++
		}
		*row++
		for tableRow := range len(t.Fields[0].Values) {
			col = 2
			for _, field := range t.Fields {
				_ = f.SetCellValue(sheetName, cellName(col, *row), getValueForCell(field.Values[tableRow]))
				_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), alignLeft)
				col++
			}
			*row++
		}
	} else {
		for _, field := range t.Fields {
			var value string
			if len(field.Values) > 0 {
				value = field.Values[0]
			}
			_ = f.SetCellValue(sheetName, cellName(1, *row), field.Name)
			_ = f.SetCellValue(sheetName, cellName(2, *row), getValueForCell(value))
			_ = f.SetCellStyle(sheetName, cellName(2, *row), cellName(2, *row), alignLeft)
			*row++
		}
	}
	*row++
}

func createXlsxReport(tables []Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	_ = f.SetSheetName("Sheet1", xlsxSheetName)
	_ = f.SetColWidth(xlsxSheetName, "A", "A", 15)
	_ = f.SetColWidth(xlsxSheetName, "B", "G", 25)
	row := 1
	for _, t := range tables {
		renderXlsxTable(t, f, xlsxSheetName, &row)
	}
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if _, err := f.WriteTo(w); err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx report to buffer")
	}
	if err := w.Flush(); err != nil {
		return nil, errors.Wrap(err, "failed to flush xlsx report")
	}
	return buf.Bytes(), nil
}

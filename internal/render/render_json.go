package render

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"encoding/json"

	"gopkg.in/yaml.v2"
)

type outRecord map[string]string
type outTable []outRecord

// tablesToRecords turns each table into a list of records keyed by field
// name. A name/value table becomes a single record.
func tablesToRecords(tables []Table) map[string]outTable {
	oReport := make(map[string]outTable)
	for _, t := range tables {
		oTable := outTable{}
		if len(t.Fields) == 0 {
			oReport[t.Name] = oTable
			continue
		}
		numRecords := len(t.Fields[0].Values)
		for recordIdx := range numRecords {
			oRecord := make(outRecord)
			for _, field := range t.Fields {
				oRecord[field.Name] = field.Values[recordIdx]
			}
			oTable = append(oTable, oRecord)
		}
		oReport[t.Name] = oTable
	}
	return oReport
}

func createJsonReport(tables []Table) ([]byte, error) {
	return json.MarshalIndent(tablesToRecords(tables), "", " ")
}

func createYamlReport(tables []Table) ([]byte, error) {
	return yaml.Marshal(tablesToRecords(tables))
}

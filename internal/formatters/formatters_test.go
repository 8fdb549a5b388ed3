// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters_test

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"sanctions-normalizer/internal/core"
	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/formatters"
	_ "sanctions-normalizer/internal/formatters/csv"
	_ "sanctions-normalizer/internal/formatters/json"
	_ "sanctions-normalizer/internal/formatters/text"
	_ "sanctions-normalizer/internal/formatters/yaml"
	"sanctions-normalizer/internal/normalizers/dates"
	"sanctions-normalizer/internal/normalizers/identifiers"
	"sanctions-normalizer/internal/normalizers/name"
)

func sampleReport() formatters.Report {
	individual := core.Record{
		RecordID:       "6908047",
		RecordIDSource: "DATAID",
		SourceFile:     "un.xml",
		RecordElement:  "INDIVIDUAL",
		Name: name.Record{
			FirstName:  "ABDUL",
			LastName:   "BAQI",
			FullName:   "ABDUL BAQI",
			SourceType: name.SourceMultiFields,
		},
		RelationalName: fieldmap.NotFound(),
		Classification: fieldmap.Result{Value: "INDIVIDUAL", SourceField: "element", Secondary: "HIGH"},
		Dates: dates.Record{
			DeathDate: &dates.DeathInfo{Date: "2015", Type: dates.DeathConfirmed, Location: "Kabul"},
		},
		Identifiers: []identifiers.Record{
			{Category: identifiers.Passport, Value: "=A123456", SourceField: "PASSPORT"},
		},
		Warnings: []string{"un.xml record 0: address normalizer failed: boom"},
	}
	entity := core.Record{
		RecordID:       "110407",
		SourceFile:     "un.xml",
		RecordIndex:    1,
		Name:           name.Record{FullName: "AL-AKHTAR TRUST", SourceType: name.SourceFullNameField},
		RelationalName: fieldmap.Result{Value: "=cmd|' /C calc'!A0", SourceField: "Father Name", Secondary: "father"},
		Classification: fieldmap.Result{Value: "ENTITY", Secondary: "HIGH"},
		Identifiers:    []identifiers.Record{},
	}
	return formatters.Report{
		Documents: []*core.Document{{
			SourceFile:    "un.xml",
			DiscoveryTier: "container",
			RecordElement: "INDIVIDUAL,ENTITY",
			RecordCount:   2,
			Records:       []core.Record{individual, entity},
		}},
		Failures: []core.FileError{{Path: "broken.xml", Err: errors.New("XML syntax error")}},
	}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"csv", "json", "text", "yaml"}, formatters.List())

	info := formatters.GetFormatInfo("yaml")
	assert.Equal(t, ".yaml", info.Extension)
	assert.Equal(t, "application/x-yaml", info.MimeType)
	assert.Len(t, formatters.GetSupportedFormats(), 4)

	_, err := formatters.Export("sarif", sampleReport(), formatters.FormatterOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available formats: csv, json, text, yaml")
}

func TestJSONFormatter(t *testing.T) {
	out, err := formatters.Export("json", sampleReport(), formatters.FormatterOptions{})
	require.NoError(t, err)

	var decoded struct {
		Summary struct {
			FileCount      int            `json:"file_count"`
			RecordCount    int            `json:"record_count"`
			FailedFiles    int            `json:"failed_files"`
			Classification map[string]int `json:"classification"`
		} `json:"summary"`
		Documents []struct {
			RecordElement string                   `json:"record_element"`
			Records       []map[string]interface{} `json:"records"`
		} `json:"documents"`
		Failures []map[string]string `json:"failures"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, 1, decoded.Summary.FileCount)
	assert.Equal(t, 2, decoded.Summary.RecordCount)
	assert.Equal(t, 1, decoded.Summary.FailedFiles)
	assert.Equal(t, map[string]int{"INDIVIDUAL": 1, "ENTITY": 1, "UNKNOWN": 0}, decoded.Summary.Classification)
	require.Len(t, decoded.Documents, 1)
	assert.Equal(t, "INDIVIDUAL,ENTITY", decoded.Documents[0].RecordElement)
	assert.Equal(t, "6908047", decoded.Documents[0].Records[0]["record_id"])
	assert.NotContains(t, decoded.Documents[0].Records[1], "raw_fields")
	assert.Equal(t, "broken.xml", decoded.Failures[0]["file"])

	compact, err := formatters.Export("json", sampleReport(), formatters.FormatterOptions{Compact: true})
	require.NoError(t, err)
	assert.NotContains(t, compact, "\n")
}

func TestJSONFormatter_EmptyReport(t *testing.T) {
	out, err := formatters.Export("json", formatters.Report{}, formatters.FormatterOptions{Compact: true})
	require.NoError(t, err)
	assert.Contains(t, out, `"documents":[]`)
	assert.NotContains(t, out, "failures")
}

func TestYAMLFormatter(t *testing.T) {
	out, err := formatters.Export("yaml", sampleReport(), formatters.FormatterOptions{})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	summary := decoded["summary"].(map[string]interface{})
	assert.Equal(t, 2, summary["record_count"])
	assert.Contains(t, out, "full_name: ABDUL BAQI")
	assert.Contains(t, out, "type: CONFIRMED")
}

func TestCSVFormatter(t *testing.T) {
	out, err := formatters.Export("csv", sampleReport(), formatters.FormatterOptions{})
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	col := make(map[string]int)
	for i, h := range rows[0] {
		col[h] = i
	}
	assert.NotContains(t, col, "warnings")
	assert.Equal(t, "ABDUL BAQI", rows[1][col["full_name"]])
	assert.Equal(t, "PASSPORT:=A123456", rows[1][col["identifiers"]], "only leading formula characters are neutralised")
	assert.Equal(t, "2015", rows[1][col["death_date"]])
	assert.Equal(t, "Kabul", rows[1][col["death_location"]])
	assert.Equal(t, "AL-AKHTAR TRUST", rows[2][col["full_name"]])
	assert.Equal(t, "'=cmd|' /C calc'!A0", rows[2][col["relational_name"]])
	assert.Equal(t, "ENTITY", rows[2][col["classification"]])

	verbose, err := formatters.Export("csv", sampleReport(), formatters.FormatterOptions{Verbose: true})
	require.NoError(t, err)
	rows, err = csv.NewReader(strings.NewReader(verbose)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "warnings", rows[0][len(rows[0])-1])
	assert.Contains(t, rows[1][len(rows[1])-1], "address normalizer failed")
}

func TestTextFormatter(t *testing.T) {
	opts := formatters.FormatterOptions{NoColor: true}

	out, err := formatters.Export("text", sampleReport(), opts)
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "=== un.xml ===")
	assert.Contains(t, out, "[INDIVIDUAL]")
	assert.Contains(t, out, "PASSPORT =A123456")
	assert.Contains(t, out, "warning: un.xml record 0")
	assert.Contains(t, out, "[FAILED] broken.xml: XML syntax error")
	assert.Contains(t, out, "2 records from 1 files (1 individual, 1 entity, 0 unknown), 1 files failed")

	opts.Verbose = true
	out, err = formatters.Export("text", sampleReport(), opts)
	require.NoError(t, err)
	assert.Contains(t, out, "--- Record 1 ---")
	assert.Contains(t, out, "Died: 2015 Kabul (CONFIRMED)")
	assert.Contains(t, out, "Classification: ENTITY (HIGH confidence)")

	out, err = formatters.Export("text", formatters.Report{}, opts)
	require.NoError(t, err)
	assert.Equal(t, "No records found.", out)
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"sanctions-normalizer/internal/core"
	"sanctions-normalizer/internal/formatters"
	"sanctions-normalizer/internal/normalizers/classification"
)

// Response represents the top-level response structure for JSON/YAML output
type Response struct {
	Summary   Summary          `json:"summary" yaml:"summary"`
	Documents []*core.Document `json:"documents" yaml:"documents"`
	Failures  []Failure        `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Summary counts what a run produced.
type Summary struct {
	FileCount      int            `json:"file_count" yaml:"file_count"`
	RecordCount    int            `json:"record_count" yaml:"record_count"`
	FailedFiles    int            `json:"failed_files" yaml:"failed_files"`
	Classification map[string]int `json:"classification" yaml:"classification"`
}

// Failure is a file that produced no document.
type Failure struct {
	File  string `json:"file" yaml:"file"`
	Error string `json:"error" yaml:"error"`
}

// Summarize counts files, records and classifications in report.
func Summarize(report formatters.Report) Summary {
	s := Summary{
		FileCount:   len(report.Documents),
		RecordCount: report.RecordCount(),
		FailedFiles: len(report.Failures),
		Classification: map[string]int{
			classification.Individual: 0,
			classification.Entity:     0,
			classification.Unknown:    0,
		},
	}
	for _, doc := range report.Documents {
		for _, rec := range doc.Records {
			s.Classification[rec.Classification.Value]++
		}
	}
	return s
}

// BuildResponse converts a report to the JSON/YAML output structure
func BuildResponse(report formatters.Report) Response {
	docs := report.Documents
	if docs == nil {
		docs = []*core.Document{}
	}
	var failures []Failure
	for _, f := range report.Failures {
		failures = append(failures, Failure{File: f.Path, Error: f.Err.Error()})
	}
	return Response{
		Summary:   Summarize(report),
		Documents: docs,
		Failures:  failures,
	}
}

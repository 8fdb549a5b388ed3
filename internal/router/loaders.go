// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"sanctions-normalizer/internal/discovery"
	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/tree"
)

// TierRows is the Source tier of delimited files.
const TierRows = "rows"

// XMLLoader parses an XML list and discovers its record element
type XMLLoader struct{}

// NewXMLLoader creates an XML loader
func NewXMLLoader() *XMLLoader { return &XMLLoader{} }

func (l *XMLLoader) GetName() string { return "xml" }

func (l *XMLLoader) GetSupportedExtensions() []string { return []string{".xml"} }

// Load parses r and runs structure discovery over the document
func (l *XMLLoader) Load(_ context.Context, _ string, r io.Reader) (*Source, error) {
	root, err := tree.Parse(r)
	if err != nil {
		return nil, err
	}

	found := discovery.Discover(root)
	source := &Source{
		Tier:           found.Tier.String(),
		RecordElements: found.RecordElements,
		Records:        found.Records,
		Discarded:      found.Discarded,
	}
	for _, n := range found.Elements {
		source.Elements = append(source.Elements, n.Name)
	}
	return source, nil
}

// CSVLoader reads one record per row, keyed by the header row
type CSVLoader struct {
	Comma rune
}

// NewCSVLoader creates a comma-separated loader
func NewCSVLoader() *CSVLoader { return &CSVLoader{Comma: ','} }

func (l *CSVLoader) GetName() string { return "csv" }

func (l *CSVLoader) GetSupportedExtensions() []string { return []string{".csv"} }

// Load reads the header row then every data row. Rows whose cells are all
// blank are skipped. Repeated header names are kept apart the same way
// repeated XML siblings are, with a numeric suffix. A UTF-8 or UTF-16 byte
// order mark is honoured.
func (l *CSVLoader) Load(ctx context.Context, _ string, r io.Reader) (*Source, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.Comma = l.Comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &Source{Tier: TierRows}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	source := &Source{Tier: TierRows, RecordElements: []string{"row"}}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		m := rowToFieldMap(header, row)
		if m == nil {
			continue
		}
		source.Records = append(source.Records, m)
		source.Elements = append(source.Elements, "row")
	}
	return source, nil
}

// rowToFieldMap returns nil for a row with no non-blank cell. Cells beyond
// the header are stored under column_<n>.
func rowToFieldMap(header, row []string) *fieldmap.FieldMap {
	m := fieldmap.New()
	blank := true
	for i, cell := range row {
		value := strings.TrimSpace(cell)
		if value != "" {
			blank = false
		}
		key := fmt.Sprintf("column_%d", i+1)
		if i < len(header) && header[i] != "" {
			key = header[i]
		}
		m.Add(key, value)
	}
	if blank {
		return nil
	}
	return m
}

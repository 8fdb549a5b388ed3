// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"sanctions-normalizer/internal/core"
	"sanctions-normalizer/internal/formatters"
)

// Formatter implements CSV output formatting, one row per record
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "One row per record for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

var headers = []string{
	"source_file", "record_index", "record_id", "record_id_source", "record_element",
	"full_name", "first_name", "middle_name", "last_name", "name_source",
	"relational_name", "relational_type",
	"classification", "classification_confidence",
	"full_address", "city", "country", "address_type",
	"birth_dates", "death_date", "death_type", "death_location", "listed_on",
	"identifiers", "aliases", "alias_source",
}

func (f *Formatter) Format(report formatters.Report, options formatters.FormatterOptions) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := headers
	if options.Verbose {
		header = append(append([]string{}, headers...), "warnings")
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, doc := range report.Documents {
		for _, rec := range doc.Records {
			row := f.createCSVRow(rec, options)
			if err := w.Write(row); err != nil {
				return "", fmt.Errorf("error writing CSV row for %s record %d: %w", rec.SourceFile, rec.RecordIndex, err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV: %w", err)
	}
	return buf.String(), nil
}

// createCSVRow flattens a record into the columns of headers
func (f *Formatter) createCSVRow(rec core.Record, options formatters.FormatterOptions) []string {
	var births []string
	for _, b := range rec.Dates.BirthDates {
		births = append(births, b.Date)
	}

	var deathDate, deathType, deathLocation string
	if d := rec.Dates.DeathDate; d != nil {
		deathDate, deathType, deathLocation = d.Date, string(d.Type), d.Location
	}

	listedOn := ""
	if len(rec.Dates.ListingDates) > 0 {
		listedOn = rec.Dates.ListingDates[0].ListedOn
	}

	var ids []string
	for _, id := range rec.Identifiers {
		ids = append(ids, string(id.Category)+":"+id.Value)
	}

	var aliasNames []string
	for _, a := range rec.Aliases.Aliases {
		aliasNames = append(aliasNames, a.FullName)
	}

	row := []string{
		rec.SourceFile,
		strconv.Itoa(rec.RecordIndex),
		rec.RecordID,
		rec.RecordIDSource,
		rec.RecordElement,
		rec.Name.FullName,
		rec.Name.FirstName,
		rec.Name.MiddleName,
		rec.Name.LastName,
		string(rec.Name.SourceType),
		rec.RelationalName.Value,
		rec.RelationalName.Secondary,
		rec.Classification.Value,
		rec.Classification.Secondary,
		rec.Address.FullAddress,
		rec.Address.City,
		rec.Address.Country,
		string(rec.Address.AddressType),
		strings.Join(births, "; "),
		deathDate,
		deathType,
		deathLocation,
		listedOn,
		strings.Join(ids, "; "),
		strings.Join(aliasNames, "; "),
		string(rec.Aliases.SourceType),
	}
	if options.Verbose {
		row = append(row, strings.Join(rec.Warnings, "; "))
	}

	for i := range row {
		row[i] = f.sanitizeFormulaInjection(row[i])
	}
	return row
}

// sanitizeFormulaInjection prevents CSV injection attacks by sanitizing formula characters
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	firstChar := field[0]
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' {
		// Prefix with single quote to prevent formula execution
		return "'" + field
	}

	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}

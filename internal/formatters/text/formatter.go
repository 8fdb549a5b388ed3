// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"sanctions-normalizer/internal/core"
	"sanctions-normalizer/internal/formatters"
	"sanctions-normalizer/internal/formatters/shared"
	"sanctions-normalizer/internal/normalizers/classification"

	"github.com/fatih/color"
)

const (
	classWidth = 12
	nameWidth  = 36
	idWidth    = 20
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"magenta": color.New(color.FgMagenta),
			"blue":    color.New(color.FgBlue),
			"white":   color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors and tables"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(report formatters.Report, options formatters.FormatterOptions) (string, error) {
	var builder strings.Builder

	if report.RecordCount() == 0 && len(report.Failures) == 0 {
		return "No records found.", nil
	}

	for _, doc := range report.Documents {
		f.appendDocumentHeader(&builder, doc, options)
		if !options.Verbose {
			f.appendHeaders(&builder, options)
		}
		for _, rec := range doc.Records {
			if options.Verbose {
				f.appendDetailedRecord(&builder, rec, options)
				continue
			}
			f.appendSummaryLine(&builder, rec, options)
		}
		builder.WriteString("\n")
	}

	for _, failure := range report.Failures {
		f.paint(&builder, options, "red", "[FAILED] %s: %v\n", failure.Path, failure.Err)
	}

	f.appendFooter(&builder, shared.Summarize(report), options)
	return builder.String(), nil
}

// paint writes a formatted string, coloured unless colours are disabled
func (f *Formatter) paint(builder *strings.Builder, options formatters.FormatterOptions, colorName, format string, args ...interface{}) {
	if options.NoColor {
		fmt.Fprintf(builder, format, args...)
		return
	}
	f.colors[colorName].Fprintf(builder, format, args...)
}

func (f *Formatter) appendDocumentHeader(builder *strings.Builder, doc *core.Document, options formatters.FormatterOptions) {
	f.paint(builder, options, "white", "=== %s ===\n", doc.SourceFile)
	f.paint(builder, options, "cyan", "Discovery: ")
	fmt.Fprintf(builder, "%s tier, element %s, %d records\n", doc.DiscoveryTier, doc.RecordElement, doc.RecordCount)
	for _, g := range doc.DiscardedCandidates {
		f.paint(builder, options, "yellow", "Discarded candidate: %s (%d)", g.Name, g.Count)
		if g.Container != "" {
			fmt.Fprintf(builder, " in %s", g.Container)
		}
		builder.WriteString("\n")
	}
}

// appendHeaders adds column headers to the string builder
func (f *Formatter) appendHeaders(builder *strings.Builder, options formatters.FormatterOptions) {
	f.paint(builder, options, "white", "%-*s %-*s %-*s %s\n",
		classWidth, "CLASS", nameWidth, "NAME", idWidth, "RECORD ID", "IDENTIFIERS")

	totalWidth := classWidth + 1 + nameWidth + 1 + idWidth + 1 + 20
	f.paint(builder, options, "white", "%s\n", strings.Repeat("-", totalWidth))
}

func (f *Formatter) classColor(value string) string {
	switch value {
	case classification.Individual:
		return "green"
	case classification.Entity:
		return "blue"
	default:
		return "yellow"
	}
}

// appendSummaryLine adds a single line summary to the string builder
func (f *Formatter) appendSummaryLine(builder *strings.Builder, rec core.Record, options formatters.FormatterOptions) {
	f.paint(builder, options, f.classColor(rec.Classification.Value), "[%-*s]", classWidth-2, rec.Classification.Value)
	builder.WriteString(" ")
	f.paint(builder, options, "white", "%-*s", nameWidth, truncate(rec.Name.FullName, nameWidth))
	builder.WriteString(" ")
	f.paint(builder, options, "magenta", "%-*s", idWidth, truncate(rec.RecordID, idWidth))
	builder.WriteString(" ")

	var ids []string
	for _, id := range rec.Identifiers {
		ids = append(ids, string(id.Category)+" "+id.Value)
	}
	f.paint(builder, options, "cyan", "%s\n", strings.Join(ids, ", "))

	for _, w := range rec.Warnings {
		f.paint(builder, options, "red", "    warning: %s\n", w)
	}
}

// field writes a "label: value" line, skipping empty values
func (f *Formatter) field(builder *strings.Builder, options formatters.FormatterOptions, label, value, source string) {
	if value == "" {
		return
	}
	f.paint(builder, options, "cyan", "  %s: ", label)
	f.paint(builder, options, "white", "%s", value)
	if source != "" {
		fmt.Fprintf(builder, " (%s)", source)
	}
	builder.WriteString("\n")
}

// appendDetailedRecord adds every normalized section of a record
func (f *Formatter) appendDetailedRecord(builder *strings.Builder, rec core.Record, options formatters.FormatterOptions) {
	f.paint(builder, options, "white", "--- Record %d ---\n", rec.RecordIndex)
	f.field(builder, options, "Record ID", rec.RecordID, rec.RecordIDSource)
	f.field(builder, options, "Element", rec.RecordElement, "")
	f.field(builder, options, "Name", rec.Name.FullName, string(rec.Name.SourceType))
	if rec.RelationalName.Found() {
		f.field(builder, options, "Relation", rec.RelationalName.Value, rec.RelationalName.Secondary)
	}

	f.paint(builder, options, "cyan", "  Classification: ")
	f.paint(builder, options, f.classColor(rec.Classification.Value), "%s", rec.Classification.Value)
	fmt.Fprintf(builder, " (%s confidence)\n", rec.Classification.Secondary)

	f.field(builder, options, "Address", rec.Address.FullAddress, string(rec.Address.AddressType))
	for _, extra := range rec.AdditionalAddresses {
		f.field(builder, options, "Other address", extra.FullAddress, "")
	}

	for _, b := range rec.Dates.BirthDates {
		f.field(builder, options, "Born", b.Date, string(b.Type))
	}
	if d := rec.Dates.DeathDate; d != nil {
		f.field(builder, options, "Died", strings.TrimSpace(d.Date+" "+d.Location), string(d.Type))
	}
	for _, l := range rec.Dates.ListingDates {
		f.field(builder, options, "Listed", l.ListedOn, "")
	}

	for _, id := range rec.Identifiers {
		f.field(builder, options, string(id.Category), id.Value, id.SourceField)
	}
	for _, a := range rec.Aliases.Aliases {
		f.field(builder, options, "Alias", a.FullName, string(a.Category))
	}

	for _, w := range rec.Warnings {
		f.paint(builder, options, "red", "  warning: %s\n", w)
	}
}

func (f *Formatter) appendFooter(builder *strings.Builder, summary shared.Summary, options formatters.FormatterOptions) {
	f.paint(builder, options, "white", "%d records from %d files", summary.RecordCount, summary.FileCount)
	fmt.Fprintf(builder, " (%d individual, %d entity, %d unknown)",
		summary.Classification[classification.Individual],
		summary.Classification[classification.Entity],
		summary.Classification[classification.Unknown])
	if summary.FailedFiles > 0 {
		f.paint(builder, options, "red", ", %d files failed", summary.FailedFiles)
	}
	builder.WriteString("\n")
}

// truncate shortens s to width runes, marking the cut with "..."
func truncate(s string, width int) string {
	runes := []rune(strings.Join(strings.Fields(s), " "))
	if len(runes) <= width {
		return string(runes)
	}
	return string(runes[:width-3]) + "..."
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/normalizers/address"
	"sanctions-normalizer/internal/normalizers/aliases"
	"sanctions-normalizer/internal/normalizers/classification"
	"sanctions-normalizer/internal/normalizers/dates"
	"sanctions-normalizer/internal/normalizers/identifiers"
	"sanctions-normalizer/internal/normalizers/name"
	"sanctions-normalizer/internal/normalizers/relational"
	"sanctions-normalizer/internal/observability"
	"sanctions-normalizer/internal/parallel"
	"sanctions-normalizer/internal/recordid"
	"sanctions-normalizer/internal/router"
)

// step fills one section of rec and returns the source field it came from,
// or "" when nothing was found.
type step struct {
	component string
	run       func(opts Options, m *fieldmap.FieldMap, element string, rec *Record) string
}

var steps = []step{
	{"name", func(_ Options, m *fieldmap.FieldMap, _ string, rec *Record) string {
		rec.Name = name.Extract(m)
		if !rec.Name.Found() {
			return ""
		}
		return rec.Name.SourceFields
	}},
	{"relational", func(_ Options, m *fieldmap.FieldMap, _ string, rec *Record) string {
		rec.RelationalName = relational.Extract(m)
		if !rec.RelationalName.Found() {
			return ""
		}
		rec.RelationalName.Value = relational.StripTitles(rec.RelationalName.Value)
		return rec.RelationalName.SourceField
	}},
	{"classification", func(_ Options, m *fieldmap.FieldMap, element string, rec *Record) string {
		rec.Classification = classification.ClassifyRecord(m, element)
		if rec.Classification.Value == classification.Unknown {
			return ""
		}
		return rec.Classification.SourceField
	}},
	{"address", func(opts Options, m *fieldmap.FieldMap, _ string, rec *Record) string {
		all := address.ExtractAll(m)
		rec.Address = address.Primary(all)
		if len(all) == 0 {
			return ""
		}
		if opts.IncludeDiscarded && len(all) > 1 {
			rec.AdditionalAddresses = all[1:]
		}
		return strings.Join(rec.Address.SourceFields, ", ")
	}},
	{"dates", func(_ Options, m *fieldmap.FieldMap, _ string, rec *Record) string {
		rec.Dates = dates.Extract(m)
		var sources []string
		for _, b := range rec.Dates.BirthDates {
			sources = append(sources, b.SourceField)
		}
		if rec.Dates.DeathDate != nil {
			sources = append(sources, rec.Dates.DeathDate.SourceField)
		}
		for _, l := range rec.Dates.ListingDates {
			sources = append(sources, l.SourceFields...)
		}
		return strings.Join(sources, ", ")
	}},
	{"identifiers", func(_ Options, m *fieldmap.FieldMap, _ string, rec *Record) string {
		rec.Identifiers = identifiers.Extract(m)
		if rec.Identifiers == nil {
			rec.Identifiers = []identifiers.Record{}
		}
		var sources []string
		for _, id := range rec.Identifiers {
			sources = append(sources, id.SourceField)
		}
		return strings.Join(sources, ", ")
	}},
	{"aliases", func(_ Options, m *fieldmap.FieldMap, _ string, rec *Record) string {
		rec.Aliases = aliases.Extract(m)
		if rec.Aliases.SourceType == aliases.SourceNotFound {
			return ""
		}
		return rec.Aliases.SourceFields
	}},
}

// Assembler runs every normalizer over a record and builds its canonical
// form. It holds no per-record state and is safe for concurrent use.
type Assembler struct {
	opts     Options
	reporter observability.Reporter
	steps    []step
}

// NewAssembler creates an assembler. A nil reporter discards reports.
func NewAssembler(opts Options, reporter observability.Reporter) *Assembler {
	if reporter == nil {
		reporter = observability.NopReporter{}
	}
	return &Assembler{opts: opts, reporter: reporter, steps: steps}
}

// Assemble builds the record at index of fileName. A panic inside a
// normalizer is recovered: the record keeps the sections that finished,
// the rest hold their not-found sentinels, and a warning is reported.
func (a *Assembler) Assemble(fileName string, index int, m *fieldmap.FieldMap, element string) Record {
	rec := sentinelRecord()
	rec.SourceFile = fileName
	rec.RecordIndex = index
	rec.RecordElement = element

	id := recordid.Resolve(fileName, m, a.opts.IDFields)
	rec.RecordID, rec.RecordIDSource = id.Value, id.SourceField
	if id.SourceField == recordid.SourceGenerated {
		msg := fmt.Sprintf("%s record %d: content hash failed, generated id %s", filepath.Base(fileName), index, id.Value)
		rec.Warnings = append(rec.Warnings, msg)
		a.reporter.Warning("recordid", msg)
	}

	for _, s := range a.steps {
		if err := a.runStep(s, m, element, &rec); err != nil {
			msg := fmt.Sprintf("%s record %d: %v", filepath.Base(fileName), index, err)
			rec.Warnings = append(rec.Warnings, msg)
			a.reporter.Warning(s.component, msg)
		}
	}

	if a.opts.IncludeRawFields {
		rec.RawFields = m
	}
	return rec
}

func (a *Assembler) runStep(s step, m *fieldmap.FieldMap, element string, rec *Record) (err error) {
	// Work on a copy so a step that panics halfway leaves the sentinel.
	work := *rec
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s normalizer failed: %v", s.component, r)
		}
	}()

	source := s.run(a.opts, m, element, &work)
	*rec = work
	if source == "" {
		a.reporter.RecordNotFound(s.component)
	} else {
		a.reporter.RecordFound(s.component, source)
	}
	return nil
}

// AssembleSource assembles every record of a loaded file, at most workers
// at a time, keeping source order.
func (a *Assembler) AssembleSource(ctx context.Context, source *router.Source, workers int) (*Document, error) {
	records, err := parallel.MapOrdered(ctx, source.Records, workers,
		func(_ context.Context, i int, m *fieldmap.FieldMap) (Record, error) {
			element := ""
			if i < len(source.Elements) {
				element = source.Elements[i]
			}
			return a.Assemble(source.FilePath, i, m, element), nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to assemble records of %s: %w", source.FilePath, err)
	}

	doc := &Document{
		SourceFile:    source.FilePath,
		DiscoveryTier: source.Tier,
		RecordElement: strings.Join(source.RecordElements, ","),
		RecordCount:   len(records),
		Records:       records,
	}
	if a.opts.IncludeDiscarded {
		doc.DiscardedCandidates = source.Discarded
	}
	return doc, nil
}

// sentinelRecord returns a record whose sections all hold their
// not-found values.
func sentinelRecord() Record {
	return Record{
		Name: name.Record{
			FullName:     name.Missing,
			SourceType:   name.SourceNotFound,
			SourceFields: fieldmap.NotFoundSource,
		},
		RelationalName: fieldmap.NotFound(),
		Classification: fieldmap.Result{
			Value:       classification.Unknown,
			SourceField: fieldmap.NotFoundSource,
			Secondary:   classification.LowConfidence,
		},
		Address: address.NotFound(),
		Dates: dates.Record{
			BirthDates:   []dates.BirthDate{},
			ListingDates: []dates.ListingInfo{},
		},
		Identifiers: []identifiers.Record{},
		Aliases: aliases.Record{
			Aliases:      []aliases.Alias{},
			SourceType:   aliases.SourceNotFound,
			SourceFields: fieldmap.NotFoundSource,
		},
	}
}

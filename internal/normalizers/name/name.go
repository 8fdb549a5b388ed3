// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package name reconstructs the subject's name from whichever of several
// mutually exclusive source shapes a record uses.
package name

import (
	"regexp"
	"strings"

	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/normalizers/shared"
)

// SourceType tells which source shape produced a Record.
type SourceType string

const (
	SourceIndividualFields SourceType = "INDIVIDUAL_FIELDS"
	SourceMultiFields      SourceType = "UNSCR_MULTI_FIELDS"
	SourceFullNameField    SourceType = "FULL_NAME_FIELD"
	SourcePattern          SourceType = "UNSCR_PATTERN"
	SourceNotFound         SourceType = "NOT_FOUND"
)

// Missing is the FullName of a record with no name-shaped field.
const Missing = "NAME MISSING"

// Record is a normalized name. When SourceType is SourceFullNameField the
// component fields are always empty.
type Record struct {
	FirstName    string     `json:"first_name" yaml:"first_name"`
	MiddleName   string     `json:"middle_name" yaml:"middle_name"`
	LastName     string     `json:"last_name" yaml:"last_name"`
	FullName     string     `json:"full_name" yaml:"full_name"`
	SourceType   SourceType `json:"source_type" yaml:"source_type"`
	SourceFields string     `json:"source_fields" yaml:"source_fields"`
}

// Found reports whether a name was extracted.
func (r Record) Found() bool {
	return r.SourceType != SourceNotFound && r.SourceType != ""
}

var (
	firstNameMatchers  = shared.PersonalPatterns("first_name", "firstname", "given_name", "givenname", "forename")
	middleNameMatchers = shared.PersonalPatterns("middle_name", "middlename")
	lastNameMatchers   = shared.PersonalPatterns("last_name", "lastname", "surname", "family_name", "familyname")
	secondNameMatchers = shared.PersonalPatterns("second_name")
	thirdNameMatchers  = shared.PersonalPatterns("third_name")
	fourthNameMatchers = shared.PersonalPatterns("fourth_name")

	fullNameMatchers = append(
		shared.PersonalPatterns(
			"full_name", "fullname", "whole_name", "wholename",
			"entity_name", "organization_name", "organisation_name", "org_name", "company_name",
		),
		fieldmap.Excluding(fieldmap.Exact("name"), func(key string) bool {
			return shared.IsAliasKey(key) || shared.IsRelationalKey(key)
		}),
	)

	individualNamePattern = regexp.MustCompile(`(?i)individual.*name`)

	// Numbered name columns, Name1 the forename and Name6 the surname.
	numberedNameKeys = []string{"Name1", "Name2", "Name3", "Name4", "Name5", "Name6"}
)

// tiers is the priority ladder. Multi-part must precede individual fields:
// its trigger is a superset of the individual-fields trigger.
var tiers = []fieldmap.Strategy[Record]{
	{Name: string(SourceMultiFields), Run: multiPart},
	{Name: string(SourceIndividualFields), Run: individualFields},
	{Name: string(SourceIndividualFields), Run: numberedFields},
	{Name: string(SourceFullNameField), Run: fullNameField},
	{Name: string(SourcePattern), Run: patternGroup},
}

// Extract runs the name tiers in order and returns the first that fires,
// or a NAME MISSING record.
func Extract(m *fieldmap.FieldMap) Record {
	if r, _, ok := fieldmap.FirstOf(m, tiers...); ok {
		return r
	}
	return Record{
		FullName:     Missing,
		SourceType:   SourceNotFound,
		SourceFields: fieldmap.NotFoundSource,
	}
}

func multiPart(m *fieldmap.FieldMap) (Record, bool) {
	first := fieldmap.LocateWith(m, firstNameMatchers...)
	if !first.Found() {
		return Record{}, false
	}
	rest := []fieldmap.Result{
		fieldmap.LocateWith(m, secondNameMatchers...),
		fieldmap.LocateWith(m, thirdNameMatchers...),
		fieldmap.LocateWith(m, fourthNameMatchers...),
	}

	lastIdx := -1
	for i := len(rest) - 1; i >= 0; i-- {
		if rest[i].Found() {
			lastIdx = i
			break
		}
	}
	if lastIdx < 0 {
		return Record{}, false
	}

	parts := []string{first.Value}
	sources := []string{first.SourceField}
	var middle []string
	for i, r := range rest {
		if !r.Found() {
			continue
		}
		parts = append(parts, r.Value)
		sources = append(sources, r.SourceField)
		if i != lastIdx {
			middle = append(middle, r.Value)
		}
	}

	return Record{
		FirstName:    first.Value,
		MiddleName:   strings.Join(middle, " "),
		LastName:     rest[lastIdx].Value,
		FullName:     strings.Join(parts, " "),
		SourceType:   SourceMultiFields,
		SourceFields: strings.Join(sources, ", "),
	}, true
}

func individualFields(m *fieldmap.FieldMap) (Record, bool) {
	first := fieldmap.LocateWith(m, firstNameMatchers...)
	last := fieldmap.LocateWith(m, lastNameMatchers...)
	if !first.Found() && !last.Found() {
		return Record{}, false
	}
	middle := fieldmap.LocateWith(m, middleNameMatchers...)

	var sources []string
	for _, r := range []fieldmap.Result{first, middle, last} {
		if r.Found() {
			sources = append(sources, r.SourceField)
		}
	}

	return Record{
		FirstName:    first.Value,
		MiddleName:   middle.Value,
		LastName:     last.Value,
		FullName:     shared.JoinNonEmpty(" ", first.Value, middle.Value, last.Value),
		SourceType:   SourceIndividualFields,
		SourceFields: strings.Join(sources, ", "),
	}, true
}

// numberedFields handles Name1..Name6 column layouts.
func numberedFields(m *fieldmap.FieldMap) (Record, bool) {
	values := make([]string, len(numberedNameKeys))
	var sources []string
	for i, key := range numberedNameKeys {
		v, stored, ok := m.GetFold(key)
		if !ok || fieldmap.IsBlank(v) {
			continue
		}
		values[i] = strings.TrimSpace(v)
		sources = append(sources, stored)
	}
	if len(sources) == 0 {
		return Record{}, false
	}

	return Record{
		FirstName:    values[0],
		MiddleName:   shared.JoinNonEmpty(" ", values[1:5]...),
		LastName:     values[5],
		FullName:     shared.JoinNonEmpty(" ", values...),
		SourceType:   SourceIndividualFields,
		SourceFields: strings.Join(sources, ", "),
	}, true
}

// fullNameField stores an opaque full name verbatim and never splits it.
func fullNameField(m *fieldmap.FieldMap) (Record, bool) {
	r := fieldmap.LocateWith(m, fullNameMatchers...)
	if !r.Found() {
		return Record{}, false
	}
	return Record{
		FullName:     r.Value,
		SourceType:   SourceFullNameField,
		SourceFields: r.SourceField,
	}, true
}

func patternGroup(m *fieldmap.FieldMap) (Record, bool) {
	matches := fieldmap.FindAll(m, shared.NotAlias(fieldmap.Regex(individualNamePattern)))
	if len(matches) == 0 {
		return Record{}, false
	}

	rec := Record{SourceType: SourcePattern}
	parts := make([]string, 0, len(matches))
	sources := make([]string, 0, len(matches))
	for _, r := range matches {
		parts = append(parts, r.Value)
		sources = append(sources, r.SourceField)
		key := strings.ToLower(r.SourceField)
		switch {
		case rec.FirstName == "" && strings.Contains(key, "first"):
			rec.FirstName = r.Value
		case rec.LastName == "" && strings.Contains(key, "last"):
			rec.LastName = r.Value
		}
	}
	rec.FullName = strings.Join(parts, " ")
	rec.SourceFields = strings.Join(sources, ", ")
	return rec, true
}

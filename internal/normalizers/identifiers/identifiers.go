// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package identifiers extracts government identifiers (CNIC, passport,
// national ID and SSN numbers) from typed fields and free text.
package identifiers

import (
	"regexp"
	"strings"

	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/normalizers/shared"
)

// Category is the kind of identifier.
type Category string

const (
	CNIC       Category = "CNIC"
	Passport   Category = "PASSPORT"
	NationalID Category = "NATIONAL_ID"
	SSN        Category = "SSN"
)

// Record is one identifier and the field it was read from.
type Record struct {
	Category    Category `json:"category" yaml:"category"`
	Value       string   `json:"value" yaml:"value"`
	SourceField string   `json:"source_field" yaml:"source_field"`
}

var (
	cnicDashed = regexp.MustCompile(`\b\d{5}-?\d{7}-?\d\b`)
	cnicBare   = regexp.MustCompile(`\b\d{13}\b`)
	ssnPattern = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)

	documentCharset = regexp.MustCompile(`^[A-Za-z0-9\- ]+$`)

	cnicFields = []fieldmap.Matcher{
		shared.NotAlias(fieldmap.Pattern("cnic")),
		shared.NotAlias(fieldmap.Exact("nic")),
		shared.NotAlias(fieldmap.Exact("nic_no")),
	}

	// Keys describing a document rather than holding its number.
	documentMetadata = []string{"type", "country", "date", "issu", "expir", "place", "authority", "remark", "note"}
)

// pairRule describes one dialect of indexed type/number field pairs: the
// suffix of the key holding the document type and the name of the sibling
// holding its number. Strict rules compare the type value for equality
// instead of containment.
type pairRule struct {
	typeSuffix string
	numberName string
	strict     bool
}

var pairRules = []pairRule{
	// OFAC idList
	{typeSuffix: "idType", numberName: "idNumber", strict: true},
	// EU identification
	{typeSuffix: "identificationTypeCode", numberName: "number", strict: true},
	// UN INDIVIDUAL_DOCUMENT
	{typeSuffix: "TYPE_OF_DOCUMENT", numberName: "NUMBER"},
	{typeSuffix: "document_type", numberName: "document_number"},
	{typeSuffix: "documenttype", numberName: "documentnumber"},
	{typeSuffix: "id_type", numberName: "id_number"},
}

// document is a typed number found through a pairRule.
type document struct {
	typeValue string
	number    string
	source    string
	strict    bool
}

// Extract pools CNIC, passport, national ID and SSN candidates in that
// order and drops repeats of the same category and value.
func Extract(m *fieldmap.FieldMap) []Record {
	docs := documents(m)

	var pool []Record
	pool = append(pool, cnics(m)...)
	pool = append(pool, passports(m, docs)...)
	pool = append(pool, nationalIDs(m, docs)...)
	pool = append(pool, ssns(m, docs)...)

	return dedupe(pool)
}

func dedupe(records []Record) []Record {
	seen := make(map[Record]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		k := Record{Category: r.Category, Value: r.Value}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// IsValidCNIC reports whether s is 13 digits once dashes are removed.
func IsValidCNIC(s string) bool {
	digits := strings.ReplaceAll(s, "-", "")
	if len(digits) != 13 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeCNIC formats a valid CNIC as 5-7-1 dashed groups. Invalid input
// is returned unchanged.
func NormalizeCNIC(s string) string {
	if !IsValidCNIC(s) {
		return s
	}
	d := strings.ReplaceAll(s, "-", "")
	return d[:5] + "-" + d[5:12] + "-" + d[12:]
}

func cnics(m *fieldmap.FieldMap) []Record {
	var out []Record
	for _, r := range fieldmap.FindAll(m, cnicFields...) {
		if IsValidCNIC(r.Value) {
			out = append(out, Record{Category: CNIC, Value: NormalizeCNIC(r.Value), SourceField: r.SourceField})
		}
	}
	for k, v := range m.All() {
		for _, re := range []*regexp.Regexp{cnicDashed, cnicBare} {
			for _, candidate := range re.FindAllString(v, -1) {
				if IsValidCNIC(candidate) {
					out = append(out, Record{Category: CNIC, Value: NormalizeCNIC(candidate), SourceField: k})
				}
			}
		}
	}
	return out
}

// documents walks every key matching a pairRule type suffix and reads the
// number sibling that shares its prefix and repeat index.
func documents(m *fieldmap.FieldMap) []document {
	var out []document
	for k, typeValue := range m.All() {
		if fieldmap.IsBlank(typeValue) || shared.IsAliasKey(k) {
			continue
		}
		base, index := fieldmap.SplitIndex(k)
		for _, rule := range pairRules {
			if len(base) < len(rule.typeSuffix) {
				continue
			}
			cut := len(base) - len(rule.typeSuffix)
			if !strings.EqualFold(base[cut:], rule.typeSuffix) {
				continue
			}
			numberKey := base[:cut] + rule.numberName
			if index != "" {
				numberKey += "_" + index
			}
			number, stored, ok := m.GetFold(numberKey)
			if ok && !shared.IsPlaceholder(number) {
				out = append(out, document{
					typeValue: strings.TrimSpace(typeValue),
					number:    strings.TrimSpace(number),
					source:    stored,
					strict:    rule.strict,
				})
			}
			break
		}
	}
	return out
}

func (d document) is(term string) bool {
	t := strings.ToLower(d.typeValue)
	if d.strict {
		return t == term
	}
	return strings.Contains(t, term)
}

// validDocumentNumber applies the structural shape check used for loosely
// named passport and national ID fields.
func validDocumentNumber(v string) bool {
	return len(v) >= 4 && len(v) <= 20 && documentCharset.MatchString(v)
}

func isDocumentMetadata(key string) bool {
	k := strings.ToLower(key)
	for _, term := range documentMetadata {
		if strings.Contains(k, term) {
			return true
		}
	}
	return shared.IsAliasKey(key)
}

func genericNumbers(m *fieldmap.FieldMap, category Category, names ...string) []Record {
	matchers := make([]fieldmap.Matcher, len(names))
	for i, n := range names {
		matchers[i] = fieldmap.Excluding(fieldmap.Pattern(n), isDocumentMetadata)
	}
	var out []Record
	for _, r := range fieldmap.FindAll(m, matchers...) {
		if validDocumentNumber(r.Value) {
			out = append(out, Record{Category: category, Value: r.Value, SourceField: r.SourceField})
		}
	}
	return out
}

func passports(m *fieldmap.FieldMap, docs []document) []Record {
	var out []Record
	for _, d := range docs {
		if d.is("passport") {
			out = append(out, Record{Category: Passport, Value: d.number, SourceField: d.source})
		}
	}
	return append(out, genericNumbers(m, Passport,
		"passport_number", "passportnumber", "passport_no", "passportno", "passport_details", "passport")...)
}

func nationalIDs(m *fieldmap.FieldMap, docs []document) []Record {
	var out []Record
	for _, d := range docs {
		t := strings.ToLower(d.typeValue)
		if strings.Contains(t, "national") {
			out = append(out, Record{Category: NationalID, Value: d.number, SourceField: d.source})
		}
	}
	return append(out, genericNumbers(m, NationalID,
		"national_id", "nationalid", "national_identification", "ni_number")...)
}

func ssns(m *fieldmap.FieldMap, docs []document) []Record {
	var out []Record
	for _, d := range docs {
		t := strings.ToLower(d.typeValue)
		if t == "ssn" || strings.Contains(t, "social security") {
			out = append(out, Record{Category: SSN, Value: d.number, SourceField: d.source})
		}
	}
	for k, v := range m.All() {
		for _, candidate := range ssnPattern.FindAllString(v, -1) {
			out = append(out, Record{Category: SSN, Value: candidate, SourceField: k})
		}
	}
	return out
}

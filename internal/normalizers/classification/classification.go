// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package classification decides whether a record describes an individual
// or an entity.
package classification

import (
	"strings"

	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/normalizers/shared"
)

// Canonical labels.
const (
	Individual = "INDIVIDUAL"
	Entity     = "ENTITY"
	Unknown    = "UNKNOWN"
)

// Confidence tags carried in Result.Secondary.
const (
	HighConfidence   = "HIGH_CONFIDENCE"
	MediumConfidence = "MEDIUM_CONFIDENCE"
	LowConfidence    = "LOW_CONFIDENCE"
)

// HeuristicSource is the SourceField of a scored classification.
const HeuristicSource = "heuristic"

var explicitFields = []fieldmap.Matcher{
	shared.NotAlias(fieldmap.Pattern("sdnType")),
	shared.NotAlias(fieldmap.Pattern("subjectType_code")),
	shared.NotAlias(fieldmap.Pattern("subjectType_classificationCode")),
	shared.NotAlias(fieldmap.Pattern("Group_Type")),
	shared.NotAlias(fieldmap.Pattern("entity_type")),
	shared.NotAlias(fieldmap.Pattern("record_type")),
	shared.NotAlias(fieldmap.Pattern("subject_type")),
	shared.NotAlias(fieldmap.Pattern("entry_type")),
	shared.NotAlias(fieldmap.Exact("type")),
	shared.NotAlias(fieldmap.Exact("category")),
	shared.NotAlias(fieldmap.Exact("classification")),
}

var elementLabels = map[string]string{
	"individual":   Individual,
	"person":       Individual,
	"entity":       Entity,
	"organization": Entity,
	"organisation": Entity,
	"company":      Entity,
}

var (
	individualTerms = []string{"INDIVIDUAL", "PERSON", "NATURAL", "HUMAN"}
	entityTerms     = []string{"ENTITY", "ORGANIZATION", "ORGANISATION", "COMPANY", "CORPORATION", "ENTERPRISE", "BUSINESS", "FIRM", "GROUP", "LEGAL"}
)

// Classify labels a record INDIVIDUAL, ENTITY or UNKNOWN. An explicit type
// field decides with high confidence; an explicit but empty field means
// INDIVIDUAL. Without one the field names are scored.
func Classify(m *fieldmap.FieldMap) fieldmap.Result {
	return ClassifyRecord(m, "")
}

// ClassifyRecord is Classify with the record element's name as a hint,
// consulted after explicit fields and before scoring. Only element names
// that are themselves a label (INDIVIDUAL, Person, ENTITY, ...) count.
func ClassifyRecord(m *fieldmap.FieldMap, element string) fieldmap.Result {
	if r, ok := fieldmap.Present(m, explicitFields...); ok {
		if r.Value == "" {
			r.Value = Individual
		} else {
			r.Value = NormalizeLabel(r.Value)
		}
		r.Secondary = HighConfidence
		return r
	}

	if label, ok := elementLabels[fieldmap.Fold(element)]; ok {
		return fieldmap.Result{Value: label, SourceField: element, Secondary: HighConfidence}
	}

	return Score(m).Result()
}

// NormalizeLabel maps a free-text type value onto a canonical label.
func NormalizeLabel(value string) string {
	v := strings.ToUpper(strings.TrimSpace(value))
	switch v {
	case "I", "P":
		return Individual
	case "E", "O":
		return Entity
	}
	if strings.Contains(v, "LEGAL") {
		return Entity
	}
	for _, term := range individualTerms {
		if strings.Contains(v, term) {
			return Individual
		}
	}
	for _, term := range entityTerms {
		if strings.Contains(v, term) {
			return Entity
		}
	}
	return Unknown
}

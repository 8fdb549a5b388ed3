// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package dates

import (
	"strings"

	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/normalizers/shared"
)

var genericBirthFields = []fieldmap.Matcher{
	shared.NotAlias(fieldmap.Pattern("date_of_birth")),
	shared.NotAlias(fieldmap.Pattern("dateofbirth")),
	shared.NotAlias(fieldmap.Pattern("birth_date")),
	shared.NotAlias(fieldmap.Pattern("birthdate_year")),
	shared.NotAlias(fieldmap.Pattern("birthdate")),
	shared.NotAlias(fieldmap.Pattern("year_of_birth")),
	shared.NotAlias(fieldmap.Pattern("birth_year")),
	shared.NotAlias(fieldmap.Exact("dob")),
	shared.NotAlias(fieldmap.Exact("born")),
}

// ExtractBirthDates collects birth dates from, in order: named exact-date
// fields with their main-entry flag, type/date/year triples, remark
// qualified birth fields and, only when nothing was found, the first
// generic birth field holding a digit.
func ExtractBirthDates(m *fieldmap.FieldMap) []BirthDate {
	var out []BirthDate
	out = append(out, exactDateFields(m)...)
	out = append(out, typedTriples(m)...)
	out = append(out, birthRemarks(m)...)
	if len(out) == 0 {
		if d, ok := genericBirth(m); ok {
			out = append(out, d)
		}
	}
	return out
}

// sibling returns the value of the key in the same repeat group as key
// whose last segment is name.
func sibling(m *fieldmap.FieldMap, key, name string) (string, string, bool) {
	base, index := fieldmap.SplitIndex(key)
	candidate := base[:strings.LastIndex(base, "_")+1] + name
	if index != "" {
		candidate += "_" + index
	}
	return m.GetFold(candidate)
}

func exactDateFields(m *fieldmap.FieldMap) []BirthDate {
	var out []BirthDate
	for k, v := range m.All() {
		if fieldmap.IsBlank(v) || shared.IsAliasKey(k) {
			continue
		}
		base, _ := fieldmap.SplitIndex(fieldmap.Fold(k))
		if !strings.HasSuffix(base, "dateofbirth") && !strings.HasSuffix(base, "birthdate_birthdate") {
			continue
		}

		value := strings.TrimSpace(v)
		d := BirthDate{
			Date:        value,
			Type:        BirthExact,
			Year:        Year(value),
			SourceField: k,
		}
		if main, _, ok := sibling(m, k, "mainEntry"); ok {
			d.IsMainEntry = strings.EqualFold(strings.TrimSpace(main), "true")
		}
		circa, _, _ := sibling(m, k, "circa")
		if isApproximate(value) || strings.EqualFold(strings.TrimSpace(circa), "true") {
			d.Type = BirthApproximately
		}
		if d.Year == "" {
			if y, _, ok := sibling(m, k, "year"); ok {
				d.Year = Year(y)
			}
		}
		out = append(out, d)
	}
	return out
}

// typedTriples reads TYPE_OF_DATE / DATE / YEAR groups.
func typedTriples(m *fieldmap.FieldMap) []BirthDate {
	var out []BirthDate
	for k, typeValue := range m.All() {
		folded := fieldmap.Fold(k)
		if !strings.Contains(folded, "birth") || shared.IsAliasKey(k) {
			continue
		}
		base, index := fieldmap.SplitIndex(k)
		if !strings.HasSuffix(strings.ToLower(base), "type_of_date") {
			continue
		}
		prefix := base[:len(base)-len("TYPE_OF_DATE")]
		get := func(name string) (string, string) {
			key := prefix + name
			if index != "" {
				key += "_" + index
			}
			v, stored, ok := m.GetFold(key)
			if !ok {
				return "", ""
			}
			return strings.TrimSpace(v), stored
		}

		date, source := get("DATE")
		year, yearSource := get("YEAR")
		from, fromSource := get("FROM_YEAR")
		to, _ := get("TO_YEAR")

		d := BirthDate{Type: tripleType(typeValue)}
		switch {
		case date != "":
			d.Date, d.SourceField = date, source
		case year != "":
			d.Date, d.SourceField = year, yearSource
		case from != "":
			d.Date, d.SourceField = shared.JoinNonEmpty("-", from, to), fromSource
		default:
			continue
		}
		d.Year = Year(d.Date)
		if d.Year == "" {
			d.Year = Year(year)
		}
		out = append(out, d)
	}
	return out
}

func tripleType(value string) BirthType {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "EXACT":
		return BirthExact
	case "APPROXIMATELY", "BETWEEN":
		return BirthApproximately
	default:
		return BirthUnknown
	}
}

func birthRemarks(m *fieldmap.FieldMap) []BirthDate {
	var out []BirthDate
	for k, v := range m.All() {
		if fieldmap.IsBlank(v) || shared.IsAliasKey(k) {
			continue
		}
		folded := fieldmap.Fold(k)
		if !strings.Contains(folded, "birth") || strings.Contains(folded, "place") {
			continue
		}
		if !strings.Contains(folded, "remark") && !strings.Contains(folded, "note") && !strings.Contains(folded, "comment") {
			continue
		}
		value := strings.TrimSpace(v)
		out = append(out, BirthDate{
			Date:        value,
			Type:        BirthRemark,
			Year:        Year(value),
			SourceField: k,
		})
	}
	return out
}

func genericBirth(m *fieldmap.FieldMap) (BirthDate, bool) {
	for _, r := range fieldmap.FindAll(m, genericBirthFields...) {
		if !digitPattern.MatchString(r.Value) {
			continue
		}
		d := BirthDate{
			Date:        r.Value,
			Type:        BirthUnknown,
			Year:        Year(r.Value),
			SourceField: r.SourceField,
		}
		switch {
		case isApproximate(r.Value):
			d.Type = BirthApproximately
		case monthDatePattern.MatchString(r.Value) || numericDatePattern.MatchString(r.Value):
			d.Type = BirthExact
		}
		return d, true
	}
	return BirthDate{}, false
}

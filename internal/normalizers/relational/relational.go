// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package relational extracts the name of the subject's father, husband or
// guardian.
package relational

import (
	"regexp"
	"strings"

	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/normalizers/shared"
)

// patterns builds Pattern matchers that skip alias keys and any key
// mentioning one of the excluded terms.
func patterns(exclude []string, names ...string) []fieldmap.Matcher {
	reject := func(key string) bool {
		if shared.IsAliasKey(key) {
			return true
		}
		k := strings.ToLower(key)
		for _, term := range exclude {
			if strings.Contains(k, term) {
				return true
			}
		}
		return false
	}
	out := make([]fieldmap.Matcher, len(names))
	for i, n := range names {
		out[i] = fieldmap.Excluding(fieldmap.Pattern(n), reject)
	}
	return out
}

func exact(names ...string) []fieldmap.Matcher {
	out := make([]fieldmap.Matcher, len(names))
	for i, n := range names {
		out[i] = fieldmap.Exact(n)
	}
	return out
}

var tiers = []fieldmap.Strategy[fieldmap.Result]{
	fieldmap.LocateStrategy("father",
		patterns([]string{"husband"}, "father_name", "fathername", "fathers_name", "father's name", "father name", "name_of_father")...),
	fieldmap.LocateStrategy("husband",
		patterns([]string{"father"}, "husband_name", "husbandname", "husbands_name", "husband name", "name_of_husband")...),
	fieldmap.LocateStrategy("father_or_husband",
		patterns(nil, "father_husband", "father_or_husband", "father/husband", "fatherhusband", "f_h_name", "fh_name", "husband_father")...),
	fieldmap.LocateStrategy("patronymic",
		patterns(nil, "patronymic", "guardian_name", "guardian", "parent_name", "parentname")...),
	fieldmap.LocateStrategy("fallback",
		append(exact("so", "s_o", "s/o", "do", "d_o", "d/o", "wo", "w_o", "w/o"),
			patterns(nil, "son_of", "sonof", "daughter_of", "wife_of", "relation_name", "relative_name")...)...),
	fieldmap.LocateStrategy("free_text",
		shared.NotAlias(fieldmap.Contains("father")),
		shared.NotAlias(fieldmap.Contains("parent")),
		shared.NotAlias(fieldmap.Contains("patron")),
	),
}

// Extract returns the first relative's name found by the tiers: father,
// husband, combined father-or-husband, patronymic or guardian, then known
// fallback keys and a free-text key scan. Titles are left in place; see
// StripTitles.
func Extract(m *fieldmap.FieldMap) fieldmap.Result {
	r, tier, ok := fieldmap.FirstOf(m, tiers...)
	if !ok {
		return fieldmap.NotFound()
	}
	r.Secondary = tier
	return r
}

var titlePrefix = regexp.MustCompile(`(?i)^\s*(?:(?:s|d|w)\s*/\s*o|(?:s|d|w)o|son\s+of|daughter\s+of|wife\s+of|binti|bint|bin|ibn)\b[\s.:,-]*`)

// StripTitles removes leading relational titles such as "S/O", "son of" or
// "bin" from an extracted name. It is applied repeatedly so stacked titles
// are removed as well.
func StripTitles(value string) string {
	out := strings.TrimSpace(value)
	for {
		stripped := titlePrefix.ReplaceAllString(out, "")
		stripped = strings.TrimSpace(stripped)
		if stripped == out || stripped == "" {
			return out
		}
		out = stripped
	}
}

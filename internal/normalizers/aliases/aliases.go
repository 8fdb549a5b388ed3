// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package aliases extracts alternate names from the alias dialects of the
// supported sources. Exactly one dialect contributes to a record.
package aliases

import (
	"strings"

	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/normalizers/shared"
)

// SourceType names the dialect aliases were read from.
type SourceType string

const (
	SourceGrouped   SourceType = "OFAC_AKALIST"
	SourceFreeText  SourceType = "CANADIAN_ALIASES"
	SourceNameAlias SourceType = "EU_NAME_ALIAS"
	SourceGeneric   SourceType = "GENERIC_ALIAS"
	SourceNotFound  SourceType = "NOT_FOUND"
)

// Category is the reliability of an alias.
type Category string

const (
	Strong Category = "strong"
	Weak   Category = "weak"
)

// Alias is one alternate name. Only grouped alias sets populate the name
// components; other dialects carry the full string alone.
type Alias struct {
	FullName    string   `json:"full_name" yaml:"full_name"`
	FirstName   string   `json:"first_name" yaml:"first_name"`
	MiddleName  string   `json:"middle_name" yaml:"middle_name"`
	LastName    string   `json:"last_name" yaml:"last_name"`
	AliasType   string   `json:"alias_type" yaml:"alias_type"`
	Category    Category `json:"category" yaml:"category"`
	SourceField string   `json:"source_field" yaml:"source_field"`
}

// Record is the alias list of one record.
type Record struct {
	Aliases      []Alias    `json:"aliases" yaml:"aliases"`
	SourceType   SourceType `json:"source_type" yaml:"source_type"`
	SourceFields string     `json:"source_fields" yaml:"source_fields"`
}

// Sub-field suffixes of a grouped alias set, matched against the folded key
// with its repeat index removed. Longer suffixes come first.
var subFields = []struct {
	part     string
	suffixes []string
}{
	{"whole", []string{"wholename", "whole_name", "alias_name", "aliasname", "fullname", "full_name"}},
	{"first", []string{"firstname", "first_name", "givenname", "given_name"}},
	{"middle", []string{"middlename", "middle_name"}},
	{"last", []string{"lastname", "last_name", "surname"}},
	{"quality", []string{"quality"}},
	{"category", []string{"category"}},
	{"type", []string{"type"}},
}

var (
	freeTextFields = []fieldmap.Matcher{
		fieldmap.Exact("aliases"),
		fieldmap.Exact("alias"),
		fieldmap.Exact("alias_list"),
		fieldmap.Exact("aliaslist"),
	}

	alternateNameFields = fieldmap.Patterns(
		"alternate_name", "alternatename", "alternative_name", "other_names", "othernames", "other_name",
	)

	genericFields = shared.PersonalPatterns(
		"also_known_as", "alsoknownas", "known_as", "knownas", "pseudonym", "nickname", "nom_de_guerre",
	)

	// Delimiters tried in order; the first one present splits the value.
	freeTextDelimiters = []string{";", "|", "\n"}
)

var tiers = []fieldmap.Strategy[[]Alias]{
	{Name: string(SourceGrouped), Run: grouped},
	{Name: string(SourceFreeText), Run: freeText},
	{Name: string(SourceNameAlias), Run: nameAlias},
	{Name: string(SourceGeneric), Run: generic},
}

// Extract returns the aliases of the first dialect that yields any.
func Extract(m *fieldmap.FieldMap) Record {
	found, tier, ok := fieldmap.FirstOf(m, tiers...)
	if !ok {
		return Record{
			Aliases:      []Alias{},
			SourceType:   SourceNotFound,
			SourceFields: fieldmap.NotFoundSource,
		}
	}

	var sources []string
	seen := make(map[string]bool)
	for _, a := range found {
		if !seen[a.SourceField] {
			seen[a.SourceField] = true
			sources = append(sources, a.SourceField)
		}
	}
	return Record{
		Aliases:      found,
		SourceType:   SourceType(tier),
		SourceFields: strings.Join(sources, ", "),
	}
}

// CategoryOf maps a source category or quality label to strong or weak.
func CategoryOf(label string) Category {
	l := strings.ToLower(strings.TrimSpace(label))
	if strings.Contains(l, "weak") || strings.Contains(l, "low") || l == "false" {
		return Weak
	}
	return Strong
}

type aliasGroup struct {
	parts map[string]string
	keys  map[string]string
}

// grouped reads alias sets whose sub-fields share a repeat index, such as
// akaList_aka_firstName / akaList_aka_firstName_2.
func grouped(m *fieldmap.FieldMap) ([]Alias, bool) {
	var order []string
	groups := make(map[string]*aliasGroup)

	for k, v := range m.All() {
		if fieldmap.IsBlank(v) || !shared.IsAliasKey(k) {
			continue
		}
		part, ok := subField(k)
		if !ok {
			continue
		}
		gk := shared.GroupKey(k)
		g, exists := groups[gk]
		if !exists {
			g = &aliasGroup{parts: map[string]string{}, keys: map[string]string{}}
			groups[gk] = g
			order = append(order, gk)
		}
		if _, taken := g.parts[part]; !taken {
			g.parts[part] = strings.TrimSpace(v)
			g.keys[part] = k
		}
	}

	var out []Alias
	for _, gk := range order {
		if a, ok := groups[gk].alias(); ok {
			out = append(out, a)
		}
	}
	return out, len(out) > 0
}

// subField identifies which part of an alias set key holds. The key must
// have a parent prefix so a lone "alias_name" column is not a set.
func subField(key string) (string, bool) {
	base, _ := fieldmap.SplitIndex(key)
	folded := fieldmap.Fold(base)
	for _, sf := range subFields {
		for _, suffix := range sf.suffixes {
			if strings.HasSuffix(folded, suffix) && len(folded) > len(suffix) {
				return sf.part, true
			}
		}
	}
	return "", false
}

func (g *aliasGroup) alias() (Alias, bool) {
	a := Alias{
		FirstName:  g.parts["first"],
		MiddleName: g.parts["middle"],
		LastName:   g.parts["last"],
		AliasType:  g.parts["type"],
	}
	a.FullName = g.parts["whole"]
	a.SourceField = g.keys["whole"]
	if a.FullName == "" {
		a.FullName = shared.JoinNonEmpty(" ", a.FirstName, a.MiddleName, a.LastName)
		for _, p := range []string{"first", "middle", "last"} {
			if k, ok := g.keys[p]; ok {
				a.SourceField = k
				break
			}
		}
	}
	if shared.IsPlaceholder(a.FullName) {
		return Alias{}, false
	}

	label := g.parts["category"]
	if label == "" {
		label = g.parts["quality"]
	}
	a.Category = CategoryOf(label)
	return a, true
}

// freeText splits a single alias column on the first delimiter present.
func freeText(m *fieldmap.FieldMap) ([]Alias, bool) {
	r := fieldmap.LocateWith(m, freeTextFields...)
	if !r.Found() {
		return nil, false
	}

	values := []string{r.Value}
	for _, d := range freeTextDelimiters {
		if strings.Contains(r.Value, d) {
			values = strings.Split(r.Value, d)
			break
		}
	}

	var out []Alias
	for _, v := range values {
		if v = strings.TrimSpace(v); shared.IsPlaceholder(v) {
			continue
		}
		out = append(out, Alias{FullName: v, Category: Strong, SourceField: r.SourceField})
	}
	return out, len(out) > 0
}

// nameAlias reads every nameAlias wholeName after the first, which is the
// primary name, and any alternate-name columns.
func nameAlias(m *fieldmap.FieldMap) ([]Alias, bool) {
	var primary string
	var out []Alias
	add := func(value, key string) {
		value = strings.TrimSpace(value)
		if shared.IsPlaceholder(value) || strings.EqualFold(value, primary) {
			return
		}
		for _, a := range out {
			if strings.EqualFold(a.FullName, value) {
				return
			}
		}
		out = append(out, Alias{FullName: value, Category: Strong, SourceField: key})
	}

	for k, v := range m.All() {
		base, index := fieldmap.SplitIndex(k)
		if fieldmap.Fold(base) != "namealias_wholename" {
			continue
		}
		if index == "" {
			primary = strings.TrimSpace(v)
			continue
		}
		add(v, k)
	}
	for _, r := range fieldmap.FindAll(m, alternateNameFields...) {
		add(r.Value, r.SourceField)
	}
	return out, len(out) > 0
}

func generic(m *fieldmap.FieldMap) ([]Alias, bool) {
	var out []Alias
	for _, r := range fieldmap.FindAll(m, genericFields...) {
		if shared.IsPlaceholder(r.Value) {
			continue
		}
		out = append(out, Alias{FullName: r.Value, Category: Strong, SourceField: r.SourceField})
	}
	return out, len(out) > 0
}

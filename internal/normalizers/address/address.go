// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package address groups address-related fields of a record and assembles
// normalized postal components.
package address

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/normalizers/shared"
)

// Type tells how a Record was assembled.
type Type string

const (
	TypeComponents Type = "components"
	TypeFull       Type = "full"
	TypeList       Type = "list"
	TypeStructured Type = "structured"
	TypeNone       Type = "none"
)

// Record is one normalized postal address.
type Record struct {
	Line1        string   `json:"line1" yaml:"line1"`
	Line2        string   `json:"line2" yaml:"line2"`
	City         string   `json:"city" yaml:"city"`
	Region       string   `json:"region" yaml:"region"`
	Country      string   `json:"country" yaml:"country"`
	PostalCode   string   `json:"postal_code" yaml:"postal_code"`
	FullAddress  string   `json:"full_address" yaml:"full_address"`
	AddressType  Type     `json:"address_type" yaml:"address_type"`
	SourceFields []string `json:"source_fields" yaml:"source_fields"`
}

// Found reports whether any address data was extracted.
func (r Record) Found() bool {
	return r.AddressType != "" && r.AddressType != TypeNone
}

// NotFound is the sentinel returned when a record carries no address.
func NotFound() Record {
	return Record{AddressType: TypeNone, SourceFields: []string{}}
}

var (
	vocabulary = []string{
		"street", "address", "city", "country", "province", "region", "postal",
		"postcode", "post_code", "zipcode", "zip_code", "location", "district", "county",
	}
	vocabularyTokens = []string{"addr", "town", "state", "zip"}

	excludedTerms = []string{
		"birth", "nationality", "citizenship", "issu", "idcountry", "document",
		"passport", "identification", "email",
	}

	// Trailing segments that belong to an address group but carry no
	// postal component.
	metadataSegments = []string{
		"uid", "id", "logicalid", "note", "notes", "remark", "remarks",
		"language", "regulationlanguage", "asatlistingtime",
	}

	postalTerms  = []string{"postal", "postcode", "post_code", "zip"}
	countryTerms = []string{"countrydescription", "country"}
	regionTerms  = []string{"state", "province", "region", "county"}
	cityTerms    = []string{"city", "town", "municipality", "district"}

	line2Key     = regexp.MustCompile(`(?:address|addr|street|line)_?2$`)
	lineKey      = regexp.MustCompile(`(?:address|addr|street|line)_?\d+$|(?:street|addressline|address_line)$`)
	freeTextKeys = []string{"full_address", "fulladdress", "address", "addr", "location", "residence"}
)

// IsAddressKey reports whether key names an address component.
func IsAddressKey(key string) bool {
	k := fieldmap.Fold(key)
	for _, term := range excludedTerms {
		if strings.Contains(k, term) {
			return false
		}
	}
	for _, term := range vocabulary {
		if strings.Contains(k, term) {
			return true
		}
	}
	segments := fieldmap.Segments(k)
	for _, token := range vocabularyTokens {
		if slices.Contains(segments, token) {
			return true
		}
	}
	return false
}

func isMetadata(key string) bool {
	return slices.Contains(metadataSegments, fieldmap.LastSegment(key))
}

type group struct {
	key    string
	fields []fieldmap.Field
}

// groups collects address fields by GroupKey in first-seen order. Numbered
// line columns with no siblings (Address_1, Address_2, ...) are line
// numbers rather than repeat indexes and join the default group.
func groups(m *fieldmap.FieldMap) []group {
	var order []string
	byKey := make(map[string]*group)
	add := func(gk string, f fieldmap.Field) {
		g, ok := byKey[gk]
		if !ok {
			g = &group{key: gk}
			byKey[gk] = g
			order = append(order, gk)
		}
		g.fields = append(g.fields, f)
	}

	for k, v := range m.All() {
		if IsAddressKey(k) {
			add(shared.GroupKey(k), fieldmap.Field{Key: k, Value: v})
		}
	}

	var out []group
	var lines []fieldmap.Field
	for _, gk := range order {
		g := byKey[gk]
		if gk != shared.DefaultGroup && len(g.fields) == 1 && lineKey.MatchString(fieldmap.Fold(g.fields[0].Key)) {
			lines = append(lines, g.fields[0])
			continue
		}
		out = append(out, *g)
	}
	if len(lines) > 0 {
		merged := false
		for i := range out {
			if out[i].key == shared.DefaultGroup {
				out[i].fields = append(out[i].fields, lines...)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, group{key: shared.DefaultGroup, fields: lines})
		}
	}

	kept := out[:0]
	for _, g := range out {
		if len(g.fields) > 1 {
			kept = append(kept, g)
		}
	}
	return kept
}

// assemble maps fields onto postal components, most specific first. The
// group's repeat index is stripped from keys before matching. It reports
// false when no component was found.
func assemble(fields []fieldmap.Field, index string) (Record, bool) {
	var rec Record
	used := make(map[string]bool)

	type candidate struct {
		field  fieldmap.Field
		folded string
	}
	var candidates []candidate
	for _, f := range fields {
		if fieldmap.IsBlank(f.Value) || isMetadata(f.Key) {
			continue
		}
		k := fieldmap.Fold(f.Key)
		if base, idx := fieldmap.SplitIndex(k); idx != "" && idx == index {
			k = base
		}
		candidates = append(candidates, candidate{field: f, folded: k})
	}

	use := func(c candidate) string {
		used[c.field.Key] = true
		rec.SourceFields = append(rec.SourceFields, c.field.Key)
		return strings.TrimSpace(c.field.Value)
	}
	take := func(terms []string) string {
		for _, term := range terms {
			for _, c := range candidates {
				if !used[c.field.Key] && strings.Contains(c.folded, term) {
					return use(c)
				}
			}
		}
		return ""
	}

	rec.PostalCode = take(postalTerms)
	rec.Country = take(countryTerms)
	rec.Region = take(regionTerms)
	rec.City = take(cityTerms)

	var line2, lines []string
	for _, c := range candidates {
		if used[c.field.Key] {
			continue
		}
		switch {
		case line2Key.MatchString(c.folded):
			line2 = append(line2, use(c))
		case lineKey.MatchString(c.folded):
			lines = append(lines, use(c))
		}
	}
	if len(lines) > 0 {
		rec.Line1 = lines[0]
		line2 = append(line2, lines[1:]...)
	}
	rec.Line2 = strings.Join(line2, ", ")

	if rec.Line1 == "" && rec.Line2 == "" && rec.City == "" && rec.Region == "" &&
		rec.PostalCode == "" && rec.Country == "" {
		return Record{}, false
	}

	if rec.Line1 == "" {
		for _, c := range candidates {
			if !used[c.field.Key] && slices.Contains(freeTextKeys, lastPart(c.folded)) {
				rec.Line1 = use(c)
				break
			}
		}
	}

	rec.FullAddress = shared.JoinNonEmpty(", ",
		rec.Line1, rec.Line2, rec.City, rec.Region, rec.PostalCode, rec.Country)
	return rec, true
}

// lastPart returns the final "_" segment of a folded key.
func lastPart(key string) string {
	if i := strings.LastIndex(key, "_"); i >= 0 {
		return key[i+1:]
	}
	return key
}

// ExtractAll returns every address that can be assembled from the record:
// all grouped addresses, or failing that a single-address or free-text
// fallback. It returns nil when the record has no address.
func ExtractAll(m *fieldmap.FieldMap) []Record {
	var out []Record
	for _, g := range groups(m) {
		if rec, ok := assemble(g.fields, g.key); ok {
			rec.AddressType = TypeStructured
			out = append(out, rec)
		}
	}
	if len(out) > 1 {
		for i := range out {
			out[i].AddressType = TypeList
		}
	}
	if len(out) > 0 {
		return out
	}

	var fields []fieldmap.Field
	for k, v := range m.All() {
		if IsAddressKey(k) {
			fields = append(fields, fieldmap.Field{Key: k, Value: v})
		}
	}
	if rec, ok := assemble(fields, ""); ok {
		rec.AddressType = TypeComponents
		return []Record{rec}
	}

	r := fieldmap.LocateWith(m, freeTextMatchers()...)
	if r.Found() {
		return []Record{{
			FullAddress:  r.Value,
			AddressType:  TypeFull,
			SourceFields: []string{r.SourceField},
		}}
	}
	return nil
}

func freeTextMatchers() []fieldmap.Matcher {
	exclude := func(key string) bool { return !IsAddressKey(key) }
	out := make([]fieldmap.Matcher, len(freeTextKeys))
	for i, k := range freeTextKeys {
		out[i] = fieldmap.Excluding(fieldmap.Pattern(k), exclude)
	}
	return out
}

// Extract returns the primary address. When several grouped addresses were
// found the first is returned and SourceFields notes how many exist; the
// rest are available from ExtractAll.
func Extract(m *fieldmap.FieldMap) Record {
	return Primary(ExtractAll(m))
}

// Primary picks the primary address out of an ExtractAll result, or the
// not-found sentinel when all is empty.
func Primary(all []Record) Record {
	if len(all) == 0 {
		return NotFound()
	}
	primary := all[0]
	if len(all) > 1 {
		primary.SourceFields = append(slices.Clone(primary.SourceFields),
			fmt.Sprintf("(%d addresses found)", len(all)))
	}
	return primary
}

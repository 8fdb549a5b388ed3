// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package dates extracts birth, death and listing dates from a record,
// including death dates mined from free-text remarks.
package dates

import (
	"regexp"
	"strings"

	"sanctions-normalizer/internal/fieldmap"
)

// BirthType qualifies a birth date.
type BirthType string

const (
	BirthExact         BirthType = "EXACT"
	BirthApproximately BirthType = "APPROXIMATELY"
	BirthRemark        BirthType = "REMARK"
	BirthUnknown       BirthType = "UNKNOWN"
)

// DeathType qualifies a death date.
type DeathType string

const (
	DeathConfirmed DeathType = "CONFIRMED"
	DeathReported  DeathType = "REPORTED"
)

// BirthDate is one birth date as stated by the source.
type BirthDate struct {
	Date        string    `json:"date" yaml:"date"`
	Type        BirthType `json:"type" yaml:"type"`
	Year        string    `json:"year" yaml:"year"`
	IsMainEntry bool      `json:"is_main_entry" yaml:"is_main_entry"`
	SourceField string    `json:"source_field" yaml:"source_field"`
}

// DeathInfo is a death date, usually mined from a remark.
type DeathInfo struct {
	Date        string    `json:"date" yaml:"date"`
	Type        DeathType `json:"type" yaml:"type"`
	Location    string    `json:"location" yaml:"location"`
	SourceField string    `json:"source_field" yaml:"source_field"`
}

// ListingInfo holds the dates a record was listed, updated and took effect.
type ListingInfo struct {
	ListedOn      string   `json:"listed_on" yaml:"listed_on"`
	LastUpdated   []string `json:"last_updated" yaml:"last_updated"`
	EffectiveDate string   `json:"effective_date" yaml:"effective_date"`
	SourceFields  []string `json:"source_fields" yaml:"source_fields"`
}

// Record aggregates every date extracted from one record.
type Record struct {
	BirthDates   []BirthDate   `json:"birth_dates" yaml:"birth_dates"`
	DeathDate    *DeathInfo    `json:"death_date" yaml:"death_date"`
	ListingDates []ListingInfo `json:"listing_dates" yaml:"listing_dates"`
}

var (
	yearPattern   = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)
	approxPattern = regexp.MustCompile(`(?i)\b(?:circa|approx(?:imately)?|about|around|ca\.|between)\b|\d\s+to\s+\d`)
	digitPattern  = regexp.MustCompile(`\d`)
)

// Extract runs the birth, death and listing extractors.
func Extract(m *fieldmap.FieldMap) Record {
	rec := Record{
		BirthDates:   ExtractBirthDates(m),
		DeathDate:    ExtractDeath(m),
		ListingDates: []ListingInfo{},
	}
	if rec.BirthDates == nil {
		rec.BirthDates = []BirthDate{}
	}
	if listing, ok := ExtractListing(m); ok {
		rec.ListingDates = append(rec.ListingDates, listing)
	}
	return rec
}

// Year returns the first plausible four-digit year in s, or "".
func Year(s string) string {
	if m := yearPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

func isApproximate(s string) bool {
	return approxPattern.MatchString(s)
}

// ExtractListing looks for listed-on, last-updated and effective-date
// fields. It reports false when none is present.
func ExtractListing(m *fieldmap.FieldMap) (ListingInfo, bool) {
	var info ListingInfo

	listed := fieldmap.Locate(m,
		"listed_on", "listedon", "listing_date", "listingdate", "date_listed", "datelisted",
		"designation_date", "date_designated", "designated_on", "publication_date", "publicationdate")
	if listed.Found() {
		info.ListedOn = listed.Value
		info.SourceFields = append(info.SourceFields, listed.SourceField)
	}

	updated := fieldmap.Locate(m,
		"last_updated", "lastupdated", "last_day_updated", "lastdayupdated", "last_update",
		"date_updated", "updated_on", "amended_on")
	if updated.Found() {
		info.LastUpdated = splitDates(updated.Value)
		info.SourceFields = append(info.SourceFields, updated.SourceField)

		base, _ := fieldmap.SplitIndex(updated.SourceField)
		for k, v := range m.All() {
			if k == updated.SourceField || fieldmap.IsBlank(v) {
				continue
			}
			if kb, idx := fieldmap.SplitIndex(k); idx != "" && kb == base {
				info.LastUpdated = append(info.LastUpdated, splitDates(v)...)
				info.SourceFields = append(info.SourceFields, k)
			}
		}
	}

	effective := fieldmap.Locate(m,
		"effective_date", "effectivedate", "entry_into_force", "entryintoforce", "date_of_effect")
	if effective.Found() {
		info.EffectiveDate = effective.Value
		info.SourceFields = append(info.SourceFields, effective.SourceField)
	}

	return info, len(info.SourceFields) > 0
}

func splitDates(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package dates

import "sanctions-normalizer/internal/help"

// Normalizer exposes the date rules to the help system.
type Normalizer struct{}

// NewNormalizer creates a dates Normalizer.
func NewNormalizer() *Normalizer { return &Normalizer{} }

// GetNormalizerInfo returns standardized information about the dates normalizer
func (n *Normalizer) GetNormalizerInfo() help.NormalizerInfo {
	return help.NormalizerInfo{
		Name:             "DATES",
		ShortDescription: "Extracts birth, death and listing dates",
		DetailedDescription: `The DATES normalizer collects every birth date a record states, including alternates. Named date-of-birth fields carry their main-entry and circa flags, TYPE_OF_DATE groups are read with their DATE, YEAR or FROM_YEAR/TO_YEAR siblings, and birth remarks are kept as REMARK entries. A generic birth field is used only when nothing else matched.

Death dates are mined from remark and comment fields. A phrase such as "confirmed to have died", "died in" or "deceased in" marks the remark; a bare "deceased" or "killed" does not; the first date after it and any place named are reported. "Confirmed" phrases are CONFIRMED, all others REPORTED.

Listing dates cover listed-on, last-updated (split on comma, semicolon and pipe, with repeated fields appended) and effective dates.`,
		Tiers: []string{
			"birth: exact date fields with mainEntry/circa",
			"birth: TYPE_OF_DATE triples",
			"birth: remark fields",
			"birth: generic fallback",
			"death: remark phrase mining",
			"listing: listed/updated/effective",
		},
		Dialects: []string{"OFAC dateOfBirthList", "EU birthdate", "UN INDIVIDUAL_DATE_OF_BIRTH", "UN COMMENTS1"},
		OutputFields: []string{
			"dates.birth_dates", "dates.death_date", "dates.listing_dates",
		},
		Examples: []string{
			"sanctions-normalizer --file consolidated.xml --format yaml",
		},
	}
}

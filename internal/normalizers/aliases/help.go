// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package aliases

import "sanctions-normalizer/internal/help"

// Normalizer exposes the alias rules to the help system.
type Normalizer struct{}

// NewNormalizer creates an aliases Normalizer.
func NewNormalizer() *Normalizer { return &Normalizer{} }

// GetNormalizerInfo returns standardized information about the aliases normalizer
func (n *Normalizer) GetNormalizerInfo() help.NormalizerInfo {
	return help.NormalizerInfo{
		Name:             "ALIASES",
		ShortDescription: "Extracts alternate names from four alias dialects",
		DetailedDescription: `The ALIASES normalizer tries four alias dialects in a fixed order and reports only the first that yields a name.

Grouped alias sets (OFAC akaList, UN INDIVIDUAL_ALIAS) are grouped by repeat index or uid and decomposed into first, middle and last names with their type and strong/weak category. A single free-text alias column is split on the first of ";", "|" or a line break that it contains. EU nameAlias entries after the first (the primary name) and alternate-name columns are read next, skipping placeholders and repeats of the primary name. Known-as, pseudonym and nickname columns are the last resort.

Aliases are strong unless the source marks them weak or low quality.`,
		Tiers: []string{
			"OFAC_AKALIST: grouped alias sets",
			"CANADIAN_ALIASES: one free-text alias column",
			"EU_NAME_ALIAS: nameAlias siblings and alternate names",
			"GENERIC_ALIAS: known-as, pseudonym, nickname",
		},
		Dialects: []string{"OFAC akaList", "UN INDIVIDUAL_ALIAS", "Canada SEMA Aliases", "EU nameAlias"},
		OutputFields: []string{
			"aliases.aliases[]", "aliases.source_type", "aliases.source_fields",
		},
		Examples: []string{
			"sanctions-normalizer --file sema.csv --format text",
		},
	}
}

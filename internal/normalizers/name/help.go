// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package name

import "sanctions-normalizer/internal/help"

// Normalizer exposes the name tiers to the help system.
type Normalizer struct{}

// NewNormalizer creates a name Normalizer.
func NewNormalizer() *Normalizer { return &Normalizer{} }

// GetNormalizerInfo returns standardized information about the name normalizer
func (n *Normalizer) GetNormalizerInfo() help.NormalizerInfo {
	return help.NormalizerInfo{
		Name:             "NAME",
		ShortDescription: "Reconstructs the subject's first, middle, last and full name",
		DetailedDescription: `The NAME normalizer rebuilds the subject's name from one of several source shapes, trying each tier in order and stopping at the first that fires.

Alias fields (aka, akaList, alias) and relatives' names (father, husband, parent) are never used. A single full-name field is copied verbatim and is never split into components.`,
		Tiers: []string{
			"UNSCR_MULTI_FIELDS: FIRST_NAME plus any of SECOND_NAME, THIRD_NAME, FOURTH_NAME",
			"INDIVIDUAL_FIELDS: firstName / middleName / lastName (or Name1..Name6)",
			"FULL_NAME_FIELD: full_name, wholeName, entity_name or a bare Name column",
			"UNSCR_PATTERN: any key matching individual.*name",
			"NOT_FOUND: full name set to NAME MISSING",
		},
		Dialects: []string{"UN consolidated list", "OFAC SDN", "EU FSF", "UK HMT", "Pakistan proscribed persons"},
		OutputFields: []string{
			"name.first_name", "name.middle_name", "name.last_name",
			"name.full_name", "name.source_type", "name.source_fields",
		},
		Examples: []string{
			"sanctions-normalizer --file consolidated.xml --format text",
		},
	}
}

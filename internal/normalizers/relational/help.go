// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package relational

import "sanctions-normalizer/internal/help"

// Normalizer exposes the relational-name tiers to the help system.
type Normalizer struct{}

// NewNormalizer creates a relational Normalizer.
func NewNormalizer() *Normalizer { return &Normalizer{} }

// GetNormalizerInfo returns standardized information about the relational name normalizer
func (n *Normalizer) GetNormalizerInfo() help.NormalizerInfo {
	return help.NormalizerInfo{
		Name:             "RELATIONAL_NAME",
		ShortDescription: "Extracts the father's, husband's or guardian's name",
		DetailedDescription: `The RELATIONAL_NAME normalizer finds the name of the subject's father, husband or guardian. Tiers are tried in order and the first non-empty field wins; the tier that fired is reported alongside the value.

Leading titles such as S/O, D/O, W/O, "son of" and "bin" are stripped from the extracted value before output.`,
		Tiers: []string{
			"father: Father Name, father_name, name_of_father",
			"husband: husband_name, name_of_husband",
			"father_or_husband: combined father/husband columns",
			"patronymic: patronymic, guardian, parent_name",
			"fallback: S/O, D/O, W/O columns, son_of, relative_name",
			"free_text: any key containing father, parent or patron",
		},
		Dialects:     []string{"Pakistan proscribed persons", "national watch lists"},
		OutputFields: []string{"relational_name.value", "relational_name.source_field", "relational_name.secondary"},
		Examples: []string{
			"sanctions-normalizer --file proscribed.csv --format yaml",
		},
	}
}

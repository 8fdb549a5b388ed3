// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package identifiers

import "sanctions-normalizer/internal/help"

// Normalizer exposes the identifier rules to the help system.
type Normalizer struct{}

// NewNormalizer creates an identifiers Normalizer.
func NewNormalizer() *Normalizer { return &Normalizer{} }

// GetNormalizerInfo returns standardized information about the identifiers normalizer
func (n *Normalizer) GetNormalizerInfo() help.NormalizerInfo {
	return help.NormalizerInfo{
		Name:             "IDENTIFIERS",
		ShortDescription: "Extracts CNIC, passport, national ID and SSN numbers",
		DetailedDescription: `The IDENTIFIERS normalizer pools typed identifiers from every source shape it recognises and removes repeats of the same category and value, keeping the first occurrence.

CNIC numbers are read from a CNIC/NIC field and from any field value holding 13 digits (optionally grouped 5-7-1 with dashes). Candidates are accepted when they are exactly 13 digits once dashes are removed and are reported in 5-7-1 form.

Passport, national ID and SSN numbers are read from indexed type/number field pairs (OFAC idType/idNumber, EU identificationTypeCode/number, UN TYPE_OF_DOCUMENT/NUMBER, document_type/document_number). Loosely named passport and national ID fields are accepted only when the value is 4 to 20 letters, digits, hyphens or spaces. Any value shaped like 123-45-6789 is reported as an SSN.

Only structural shape is checked; check digits and registries are not consulted.`,
		Tiers: []string{
			"CNIC: direct field, then value scan",
			"PASSPORT: typed pairs, then generic fields",
			"NATIONAL_ID: typed pairs, then generic fields",
			"SSN: typed pairs, then value scan",
		},
		Dialects: []string{"OFAC idList", "EU identification", "UN INDIVIDUAL_DOCUMENT", "UK Passport_Details", "Pakistan CNIC"},
		OutputFields: []string{
			"identifiers[].category", "identifiers[].value", "identifiers[].source_field",
		},
		Examples: []string{
			"sanctions-normalizer --file proscribed.csv --format csv",
		},
	}
}

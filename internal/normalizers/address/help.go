// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package address

import "sanctions-normalizer/internal/help"

// Normalizer exposes the address rules to the help system.
type Normalizer struct{}

// NewNormalizer creates an address Normalizer.
func NewNormalizer() *Normalizer { return &Normalizer{} }

// GetNormalizerInfo returns standardized information about the address normalizer
func (n *Normalizer) GetNormalizerInfo() help.NormalizerInfo {
	return help.NormalizerInfo{
		Name:             "ADDRESS",
		ShortDescription: "Groups address fields and assembles postal components",
		DetailedDescription: `The ADDRESS normalizer collects every address-related field (street, address, city, town, state, province, region, postal/zip code, country, location) and groups them by their repeat index. Birth places, nationalities and document-issuing countries are ignored.

Each group with more than one field is mapped onto line1, line2, city, region, postal code and country, most specific component first. The full address joins the non-empty components in that order. When several addresses are found the first is the primary address and the rest are reported as additional addresses.`,
		Tiers: []string{
			"structured: one grouped address",
			"list: several grouped addresses, first is primary",
			"components: ungrouped component fields",
			"full: a single free-text address or location field",
			"none: no address data in the record",
		},
		Dialects: []string{"OFAC addressList", "EU address", "UN INDIVIDUAL_ADDRESS", "UK Address_1..Address_6", "Pakistan Province/District"},
		OutputFields: []string{
			"address.line1", "address.line2", "address.city", "address.region",
			"address.country", "address.postal_code", "address.full_address",
			"address.address_type", "address.source_fields", "additional_addresses",
		},
		Examples: []string{
			"sanctions-normalizer --file sdn.xml --include-discarded",
		},
	}
}

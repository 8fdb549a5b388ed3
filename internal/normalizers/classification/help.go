// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classification

import "sanctions-normalizer/internal/help"

// Normalizer exposes the classification rules to the help system.
type Normalizer struct{}

// NewNormalizer creates a classification Normalizer.
func NewNormalizer() *Normalizer { return &Normalizer{} }

// GetNormalizerInfo returns standardized information about the classification engine
func (n *Normalizer) GetNormalizerInfo() help.NormalizerInfo {
	info := help.NormalizerInfo{
		Name:             "CLASSIFICATION",
		ShortDescription: "Labels each record INDIVIDUAL, ENTITY or UNKNOWN",
		DetailedDescription: `The CLASSIFICATION engine first looks for an explicit type field (sdnType, subjectType, Group_Type, entity_type, type, category). Its value is mapped onto INDIVIDUAL or ENTITY with high confidence; an explicit field that is present but empty means INDIVIDUAL.

Without an explicit field the record element name is used when it is itself a label (INDIVIDUAL, ENTITY, Person). Otherwise every field name is scored against weighted individual and entity vocabularies. The higher total wins and a tie is UNKNOWN.`,
		Tiers: []string{
			"explicit type field: HIGH_CONFIDENCE",
			"record element name: HIGH_CONFIDENCE",
			"field-name scoring: HIGH (>= 3), MEDIUM (>= 2), LOW otherwise",
		},
		Dialects:     []string{"OFAC SDN", "EU FSF", "UK HMT", "UN consolidated list", "unknown formats (scoring)"},
		OutputFields: []string{"classification.value", "classification.source_field", "classification.secondary"},
		Examples: []string{
			"sanctions-normalizer --file sdn.xml --format csv",
		},
	}
	for _, r := range scoringTable {
		info.Weights = append(info.Weights, help.Weight{Side: r.side, Weight: r.weight, Terms: r.terms})
	}
	return info
}

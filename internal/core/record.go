// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"sanctions-normalizer/internal/discovery"
	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/normalizers/address"
	"sanctions-normalizer/internal/normalizers/aliases"
	"sanctions-normalizer/internal/normalizers/dates"
	"sanctions-normalizer/internal/normalizers/identifiers"
	"sanctions-normalizer/internal/normalizers/name"
)

// Record is the canonical form of one source record.
type Record struct {
	RecordID            string               `json:"record_id" yaml:"record_id"`
	RecordIDSource      string               `json:"record_id_source" yaml:"record_id_source"`
	SourceFile          string               `json:"source_file" yaml:"source_file"`
	RecordIndex         int                  `json:"record_index" yaml:"record_index"`
	RecordElement       string               `json:"record_element" yaml:"record_element"`
	Name                name.Record          `json:"name" yaml:"name"`
	RelationalName      fieldmap.Result      `json:"relational_name" yaml:"relational_name"`
	Classification      fieldmap.Result      `json:"classification" yaml:"classification"`
	Address             address.Record       `json:"address" yaml:"address"`
	AdditionalAddresses []address.Record     `json:"additional_addresses,omitempty" yaml:"additional_addresses,omitempty"`
	Dates               dates.Record         `json:"dates" yaml:"dates"`
	Identifiers         []identifiers.Record `json:"identifiers" yaml:"identifiers"`
	Aliases             aliases.Record       `json:"aliases" yaml:"aliases"`
	RawFields           *fieldmap.FieldMap   `json:"raw_fields,omitempty" yaml:"raw_fields,omitempty"`
	Warnings            []string             `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Document is the normalized output for one input file.
type Document struct {
	SourceFile          string            `json:"source_file" yaml:"source_file"`
	DiscoveryTier       string            `json:"discovery_tier" yaml:"discovery_tier"`
	RecordElement       string            `json:"record_element" yaml:"record_element"`
	RecordCount         int               `json:"record_count" yaml:"record_count"`
	DiscardedCandidates []discovery.Group `json:"discarded_candidates,omitempty" yaml:"discarded_candidates,omitempty"`
	Records             []Record          `json:"records" yaml:"records"`
}

// Options controls optional parts of the output.
type Options struct {
	// IDFields are the system id keys tried before falling back to a
	// content hash; empty means recordid.DefaultIDFields.
	IDFields []string
	// IncludeRawFields attaches each record's flattened field-map.
	IncludeRawFields bool
	// IncludeDiscarded reports secondary addresses and discovery
	// candidates that lost a tie.
	IncludeDiscarded bool
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"sanctions-normalizer/internal/config"
	"sanctions-normalizer/internal/help"
	"sanctions-normalizer/internal/normalizers/address"
	"sanctions-normalizer/internal/normalizers/aliases"
	"sanctions-normalizer/internal/normalizers/classification"
	"sanctions-normalizer/internal/normalizers/dates"
	"sanctions-normalizer/internal/normalizers/identifiers"
	"sanctions-normalizer/internal/normalizers/name"
	"sanctions-normalizer/internal/normalizers/relational"
)

// BuildHelpProviders returns the help provider of every normalizer the
// assembler runs, in assembly order.
func BuildHelpProviders() []help.Provider {
	return []help.Provider{
		name.NewNormalizer(),
		relational.NewNormalizer(),
		classification.NewNormalizer(),
		address.NewNormalizer(),
		dates.NewNormalizer(),
		identifiers.NewNormalizer(),
		aliases.NewNormalizer(),
	}
}

// BuildOptions resolves the extraction options from the config file and
// the active profile. Pass nil for profile to use the config alone.
func BuildOptions(cfg *config.Config, profile *config.Profile) Options {
	var opts Options
	if cfg != nil {
		opts.IDFields = cfg.Extraction.IDFields
		opts.IncludeRawFields = cfg.Extraction.IncludeRawFields
		opts.IncludeDiscarded = cfg.Extraction.IncludeDiscarded
	}

	// Apply profile-level overrides
	if profile != nil && profile.Extraction != nil {
		if len(profile.Extraction.IDFields) > 0 {
			opts.IDFields = profile.Extraction.IDFields
		}
		opts.IncludeRawFields = profile.Extraction.IncludeRawFields
		opts.IncludeDiscarded = profile.Extraction.IncludeDiscarded
	}

	return opts
}

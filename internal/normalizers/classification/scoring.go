// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classification

import (
	"strings"

	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/normalizers/shared"
)

// rule awards weight to one side when a field key matches any term. Terms
// starting with "=" must equal a whole key segment; others match as
// substrings of the folded key.
type rule struct {
	side    string
	weight  int
	terms   []string
	exclude []string
}

// scoringTable is ordered by weight, individual before entity at equal
// weight. A key is credited to the first rule it matches and to no other.
var scoringTable = []rule{
	{
		side:   Individual,
		weight: 3,
		terms: []string{
			"first_name", "firstname", "last_name", "lastname", "middle_name", "middlename",
			"second_name", "third_name", "fourth_name", "surname", "given_name", "forename",
			"father", "husband", "mother",
		},
	},
	{
		side:   Entity,
		weight: 3,
		terms: []string{
			"company", "organization", "organisation", "corporation", "enterprise",
			"business_name", "entity_name", "org_name", "=firm",
		},
	},
	{
		side:   Individual,
		weight: 2,
		terms: []string{
			"birth", "=dob", "gender", "=sex", "nationality", "citizenship", "passport",
			"cnic", "=ssn", "title", "designation", "spouse", "occupation",
		},
	},
	{
		side:   Entity,
		weight: 2,
		terms: []string{
			"incorporat", "legal_form", "subsidiar", "headquarter", "commercial",
			"=ltd", "=llc", "=inc", "trade_name", "parent_company",
		},
	},
	{
		side:    Individual,
		weight:  1,
		terms:   []string{"name"},
		exclude: []string{"company", "org", "business", "entity", "vessel", "firm", "trade"},
	},
	{
		side:   Entity,
		weight: 1,
		terms: []string{
			"registration", "reg_no", "regnumber", "=tax", "=vat", "=tin", "=ein",
			"duns", "=swift", "=bic", "license", "licence",
		},
	},
}

func (r rule) matches(folded string, segments []string) bool {
	for _, ex := range r.exclude {
		if strings.Contains(folded, ex) {
			return false
		}
	}
	for _, term := range r.terms {
		if token, ok := strings.CutPrefix(term, "="); ok {
			for _, seg := range segments {
				if seg == token {
					return true
				}
			}
			continue
		}
		if strings.Contains(folded, term) {
			return true
		}
	}
	return false
}

// Scores holds the per-side totals of the heuristic and the keys that
// contributed to each.
type Scores struct {
	Individual       int
	Entity           int
	IndividualFields []string
	EntityFields     []string
}

// Score sums rule weights over every non-alias key of m.
func Score(m *fieldmap.FieldMap) Scores {
	var s Scores
	for key := range m.All() {
		if shared.IsAliasKey(key) {
			continue
		}
		folded := fieldmap.Fold(key)
		segments := strings.FieldsFunc(folded, func(r rune) bool {
			return r == '_' || r == ' ' || r == '-' || r == '.'
		})
		for _, r := range scoringTable {
			if !r.matches(folded, segments) {
				continue
			}
			if r.side == Individual {
				s.Individual += r.weight
				s.IndividualFields = append(s.IndividualFields, key)
			} else {
				s.Entity += r.weight
				s.EntityFields = append(s.EntityFields, key)
			}
			break
		}
	}
	return s
}

// Result converts the totals into a classification. Ties, including no
// indicators at all, are UNKNOWN.
func (s Scores) Result() fieldmap.Result {
	switch {
	case s.Individual > s.Entity:
		return fieldmap.Result{Value: Individual, SourceField: HeuristicSource, Secondary: confidence(s.Individual)}
	case s.Entity > s.Individual:
		return fieldmap.Result{Value: Entity, SourceField: HeuristicSource, Secondary: confidence(s.Entity)}
	default:
		return fieldmap.Result{Value: Unknown, SourceField: HeuristicSource, Secondary: LowConfidence}
	}
}

func confidence(total int) string {
	switch {
	case total >= 3:
		return HighConfidence
	case total >= 2:
		return MediumConfidence
	default:
		return LowConfidence
	}
}

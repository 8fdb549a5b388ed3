// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package aliases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanctions-normalizer/internal/fieldmap"
)

func TestExtract_OFACAkaList(t *testing.T) {
	m := fieldmap.Of(
		"lastName", "AL-QAIDA",
		"akaList_aka_uid", "1",
		"akaList_aka_type", "a.k.a.",
		"akaList_aka_category", "strong",
		"akaList_aka_lastName", "THE BASE",
		"akaList_aka_uid_2", "2",
		"akaList_aka_type_2", "a.k.a.",
		"akaList_aka_category_2", "weak",
		"akaList_aka_lastName_2", "Ali",
		"akaList_aka_firstName_2", "Abu",
	)

	got := Extract(m)
	assert.Equal(t, SourceGrouped, got.SourceType)
	assert.Equal(t, "akaList_aka_lastName, akaList_aka_firstName_2", got.SourceFields)
	require.Len(t, got.Aliases, 2)
	assert.Equal(t, Alias{
		FullName:    "THE BASE",
		LastName:    "THE BASE",
		AliasType:   "a.k.a.",
		Category:    Strong,
		SourceField: "akaList_aka_lastName",
	}, got.Aliases[0])
	assert.Equal(t, Alias{
		FullName:    "Abu Ali",
		FirstName:   "Abu",
		LastName:    "Ali",
		AliasType:   "a.k.a.",
		Category:    Weak,
		SourceField: "akaList_aka_firstName_2",
	}, got.Aliases[1])
}

func TestExtract_UNAliasQuality(t *testing.T) {
	m := fieldmap.Of(
		"FIRST_NAME", "Muhammad",
		"INDIVIDUAL_ALIAS_QUALITY", "Good",
		"INDIVIDUAL_ALIAS_ALIAS_NAME", "Abu Muhammad",
		"INDIVIDUAL_ALIAS_QUALITY_2", "Low",
		"INDIVIDUAL_ALIAS_ALIAS_NAME_2", "Abu M",
	)

	got := Extract(m)
	assert.Equal(t, SourceGrouped, got.SourceType)
	require.Len(t, got.Aliases, 2)
	assert.Equal(t, "Abu Muhammad", got.Aliases[0].FullName)
	assert.Equal(t, Strong, got.Aliases[0].Category)
	assert.Empty(t, got.Aliases[0].FirstName)
	assert.Equal(t, "Abu M", got.Aliases[1].FullName)
	assert.Equal(t, Weak, got.Aliases[1].Category)
	assert.Equal(t, "INDIVIDUAL_ALIAS_ALIAS_NAME_2", got.Aliases[1].SourceField)
}

func TestExtract_FreeTextSplitsOnFirstDelimiterFound(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"semicolon wins over pipe", "Ivan Petrov; I. Petrov | Vanya", []string{"Ivan Petrov", "I. Petrov | Vanya"}},
		{"pipe", "Ivan Petrov|Vanya", []string{"Ivan Petrov", "Vanya"}},
		{"newline", "Ivan Petrov\nVanya\n", []string{"Ivan Petrov", "Vanya"}},
		{"single value", "Ivan Petrov", []string{"Ivan Petrov"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(fieldmap.Of("Name", "X", "Aliases", tt.value))
			assert.Equal(t, SourceFreeText, got.SourceType)
			assert.Equal(t, "Aliases", got.SourceFields)

			var names []string
			for _, a := range got.Aliases {
				names = append(names, a.FullName)
				assert.Equal(t, Strong, a.Category)
				assert.Empty(t, a.FirstName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestExtract_EUNameAlias(t *testing.T) {
	m := fieldmap.Of(
		"logicalId", "13",
		"nameAlias_wholeName", "Saddam Hussein Al-Tikriti",
		"nameAlias_wholeName_2", "Abu Ali",
		"nameAlias_wholeName_3", "saddam hussein al-tikriti",
		"nameAlias_wholeName_4", "Abu Ali",
		"nameAlias_wholeName_5", "n/a",
	)

	got := Extract(m)
	assert.Equal(t, SourceNameAlias, got.SourceType)
	assert.Equal(t, []Alias{
		{FullName: "Abu Ali", Category: Strong, SourceField: "nameAlias_wholeName_2"},
	}, got.Aliases)
}

func TestExtract_AlternateNameColumns(t *testing.T) {
	got := Extract(fieldmap.Of("name", "ACME LTD", "Other_Names", "ACME Trading"))
	assert.Equal(t, SourceNameAlias, got.SourceType)
	require.Len(t, got.Aliases, 1)
	assert.Equal(t, "ACME Trading", got.Aliases[0].FullName)
}

func TestExtract_Generic(t *testing.T) {
	got := Extract(fieldmap.Of("name", "John", "known_as", "The Doctor", "nickname", "-"))
	assert.Equal(t, SourceGeneric, got.SourceType)
	assert.Equal(t, []Alias{
		{FullName: "The Doctor", Category: Strong, SourceField: "known_as"},
	}, got.Aliases)
}

func TestExtract_NotFound(t *testing.T) {
	got := Extract(fieldmap.Of("name", "John"))
	assert.Equal(t, SourceNotFound, got.SourceType)
	assert.Equal(t, fieldmap.NotFoundSource, got.SourceFields)
	assert.NotNil(t, got.Aliases)
	assert.Empty(t, got.Aliases)
}

func TestExtract_GroupedDialectShortCircuits(t *testing.T) {
	m := fieldmap.Of(
		"akaList_aka_lastName", "THE BASE",
		"Aliases", "Other One; Other Two",
		"known_as", "Someone",
	)

	got := Extract(m)
	assert.Equal(t, SourceGrouped, got.SourceType)
	require.Len(t, got.Aliases, 1)
	assert.Equal(t, "THE BASE", got.Aliases[0].FullName)
}

func TestCategoryOf(t *testing.T) {
	tests := map[string]Category{
		"strong": Strong,
		"Good":   Strong,
		"":       Strong,
		"weak":   Weak,
		"Low":    Weak,
		"false":  Weak,
	}
	for label, want := range tests {
		assert.Equal(t, want, CategoryOf(label), label)
	}
}

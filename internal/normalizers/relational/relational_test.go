// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package relational

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sanctions-normalizer/internal/fieldmap"
)

func TestExtract_Tiers(t *testing.T) {
	tests := []struct {
		name   string
		fields *fieldmap.FieldMap
		value  string
		source string
		tier   string
	}{
		{
			name:   "father column",
			fields: fieldmap.Of("Name", "Ali", "Father Name", "Muhammad Yusuf"),
			value:  "Muhammad Yusuf", source: "Father Name", tier: "father",
		},
		{
			name:   "father wins over husband",
			fields: fieldmap.Of("husband_name", "Omar", "father_name", "Yusuf"),
			value:  "Yusuf", source: "father_name", tier: "father",
		},
		{
			name:   "husband",
			fields: fieldmap.Of("name", "Ayesha", "husband_name", "Omar"),
			value:  "Omar", source: "husband_name", tier: "husband",
		},
		{
			name:   "combined column is not taken as father or husband",
			fields: fieldmap.Of("father_husband_name", "Karim"),
			value:  "Karim", source: "father_husband_name", tier: "father_or_husband",
		},
		{
			name:   "guardian",
			fields: fieldmap.Of("guardian", "Rashid"),
			value:  "Rashid", source: "guardian", tier: "patronymic",
		},
		{
			name:   "short title column",
			fields: fieldmap.Of("S/O", "Abdul Ghani"),
			value:  "Abdul Ghani", source: "S/O", tier: "fallback",
		},
		{
			name:   "free text scan",
			fields: fieldmap.Of("details_of_father", "Jamal"),
			value:  "Jamal", source: "details_of_father", tier: "free_text",
		},
		{
			name:   "blank father falls through",
			fields: fieldmap.Of("father_name", " ", "husband_name", "Omar"),
			value:  "Omar", source: "husband_name", tier: "husband",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.fields)
			assert.Equal(t, tt.value, got.Value)
			assert.Equal(t, tt.source, got.SourceField)
			assert.Equal(t, tt.tier, got.Secondary)
		})
	}
}

func TestExtract_IgnoresAliasKeys(t *testing.T) {
	got := Extract(fieldmap.Of("aka_father_name", "X"))
	assert.False(t, got.Found())
	assert.Equal(t, fieldmap.NotFoundSource, got.SourceField)
}

func TestExtract_NotFound(t *testing.T) {
	got := Extract(fieldmap.Of("firstName", "Ali", "lastName", "Khan"))
	assert.False(t, got.Found())
	assert.Empty(t, got.Value)
}

func TestStripTitles(t *testing.T) {
	tests := map[string]string{
		"S/O Abdul Ghani":    "Abdul Ghani",
		"s/o. Abdul Ghani":   "Abdul Ghani",
		"D/O Rashid":         "Rashid",
		"W/O  Omar Farooq":   "Omar Farooq",
		"SO Karim":           "Karim",
		"son of Jamal Uddin": "Jamal Uddin",
		"Daughter Of Hamid":  "Hamid",
		"wife of Tariq":      "Tariq",
		"bin Abdullah":       "Abdullah",
		"Ibn Khaldun":        "Khaldun",
		"S/O son of Ahmed":   "Ahmed",
		"Sohail Ahmed":       "Sohail Ahmed",
		"Binyamin Cohen":     "Binyamin Cohen",
		"  Muhammad Yusuf  ": "Muhammad Yusuf",
		"S/O":                "S/O",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, StripTitles(in))
		})
	}
}

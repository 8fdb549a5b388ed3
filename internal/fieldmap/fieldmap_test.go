// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fieldmap

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFieldMap_AbsentDiffersFromEmpty(t *testing.T) {
	m := Of("present", "")

	v, ok := m.Get("present")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestFieldMap_SetKeepsPosition(t *testing.T) {
	m := Of("a", "1", "b", "2")
	m.Set("a", "3")

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, "3", v)
}

func TestFieldMap_AddSuffixesCollisions(t *testing.T) {
	m := New()
	assert.Equal(t, "VALUE", m.Add("VALUE", "a"))
	assert.Equal(t, "VALUE_2", m.Add("VALUE", "b"))
	assert.Equal(t, "VALUE_3", m.Add("VALUE", "c"))

	assert.Equal(t, 3, m.Len())
	v, _ := m.Get("VALUE_2")
	assert.Equal(t, "b", v)
}

func TestFieldMap_GetFold(t *testing.T) {
	m := Of("FIRST_NAME", "ALI", "Prénom", "Zoé")

	v, key, ok := m.GetFold("first_name")
	require.True(t, ok)
	assert.Equal(t, "ALI", v)
	assert.Equal(t, "FIRST_NAME", key)

	v, _, ok = m.GetFold("PRENOM")
	require.True(t, ok)
	assert.Equal(t, "Zoé", v)

	_, _, ok = m.GetFold("last_name")
	assert.False(t, ok)
}

func TestFieldMap_AllStopsEarly(t *testing.T) {
	m := Of("a", "1", "b", "2", "c", "3")
	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestFieldMap_MarshalJSONPreservesOrder(t *testing.T) {
	m := Of("z", "1", "a", "2")
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"1","a":"2"}`, string(data))
}

func TestFieldMap_MarshalYAMLPreservesOrder(t *testing.T) {
	m := Of("z", "1", "a", "")
	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "z: \"1\"\na: \"\"\n", string(data))
}

func TestFieldMap_NilSafe(t *testing.T) {
	var m *FieldMap
	assert.Equal(t, 0, m.Len())
	_, ok := m.Get("x")
	assert.False(t, ok)
	assert.False(t, Locate(m, "x").Found())
}

func TestSplitIndex(t *testing.T) {
	tests := []struct {
		key, base, index string
	}{
		{"Address_1", "Address", "1"},
		{"akaList_aka_firstName_12", "akaList_aka_firstName", "12"},
		{"FIRST_NAME", "FIRST_NAME", ""},
		{"name", "name", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			base, index := SplitIndex(tt.key)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.index, index)
		})
	}
}

func TestSegments(t *testing.T) {
	assert.True(t, HasSegment("akaList_aka_firstName", "aka"))
	assert.False(t, HasSegment("nameAlias_firstName", "alias"))
	assert.Equal(t, "city", LastSegment("addressList_address_city_2"))
}

func TestLocate_ExactBeforeSubstring(t *testing.T) {
	m := Of("mother_name", "Amina", "Name", "Bilal")

	r := Locate(m, "name")
	assert.Equal(t, "Bilal", r.Value)
	assert.Equal(t, "Name", r.SourceField)
}

func TestLocate_PatternOrderWins(t *testing.T) {
	m := Of("surname", "Khan", "firstName", "Ali")

	r := Locate(m, "firstname", "surname")
	assert.Equal(t, "Ali", r.Value)
	assert.Equal(t, "firstName", r.SourceField)
}

func TestLocate_BlankIsNonMatch(t *testing.T) {
	m := Of("firstName", "   ", "firstName_2", "Omar")

	r := Locate(m, "firstname")
	assert.Equal(t, "Omar", r.Value)
	assert.Equal(t, "firstName_2", r.SourceField)
}

func TestLocate_Sentinel(t *testing.T) {
	r := Locate(Of("a", "b"), "zzz")
	assert.False(t, r.Found())
	assert.Equal(t, NotFoundSource, r.SourceField)
	assert.Empty(t, r.Value)
}

func TestLocateWith_Matchers(t *testing.T) {
	m := Of(
		"father_name", "Yusuf",
		"full_name", "Ali Yusuf Khan",
		"individual_name_first", "Ali",
	)

	t.Run("exact does not fall back to substring", func(t *testing.T) {
		assert.False(t, LocateWith(m, Exact("name")).Found())
	})

	t.Run("contains", func(t *testing.T) {
		assert.Equal(t, "father_name", LocateWith(m, Contains("NAME")).SourceField)
	})

	t.Run("regex", func(t *testing.T) {
		r := LocateWith(m, Regex(regexp.MustCompile(`(?i)individual.*name`)))
		assert.Equal(t, "Ali", r.Value)
	})

	t.Run("excluding", func(t *testing.T) {
		noFather := func(k string) bool { return strings.Contains(strings.ToLower(k), "father") }
		r := LocateWith(m, Excluding(Contains("name"), noFather))
		assert.Equal(t, "full_name", r.SourceField)
	})
}

func TestPresent_ReportsBlankFields(t *testing.T) {
	m := Of("sdnType", "")

	r, ok := Present(m, Exact("sdnType"))
	assert.True(t, ok)
	assert.Equal(t, "sdnType", r.SourceField)
	assert.False(t, LocateWith(m, Exact("sdnType")).Found())
}

func TestFindAll_DeduplicatesKeys(t *testing.T) {
	m := Of("name_first", "Ali", "name_last", "Khan", "blank_name", "")
	results := FindAll(m, Contains("name"), Contains("first"))
	require.Len(t, results, 2)
	assert.Equal(t, "name_first", results[0].SourceField)
	assert.Equal(t, "name_last", results[1].SourceField)
}

func TestFirstOf(t *testing.T) {
	var ran []string
	tier := func(name string, ok bool) Strategy[string] {
		return Strategy[string]{Name: name, Run: func(*FieldMap) (string, bool) {
			ran = append(ran, name)
			return name, ok
		}}
	}

	v, name, ok := FirstOf(New(), tier("one", false), tier("two", true), tier("three", true))
	assert.True(t, ok)
	assert.Equal(t, "two", v)
	assert.Equal(t, "two", name)
	assert.Equal(t, []string{"one", "two"}, ran)

	_, _, ok = FirstOf[string](New())
	assert.False(t, ok)
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fieldmap provides the flattened, ordered key/value view of one
// source record together with the field locator primitives every normalizer
// is built on.
package fieldmap

import (
	"bytes"
	"encoding/json"
	"iter"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Field is a single key/value pair in insertion order.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// FieldMap is an insertion-ordered string map. Absent keys are distinct from
// keys holding an empty string. The zero value is ready to use.
//
// A FieldMap is not safe for concurrent mutation; once built it may be read
// from any number of goroutines.
type FieldMap struct {
	keys   []string
	folded []string
	values map[string]string
}

// New returns an empty FieldMap.
func New() *FieldMap {
	return &FieldMap{values: make(map[string]string)}
}

// Of builds a FieldMap from alternating key/value arguments. A trailing key
// without a value is stored with an empty value.
func Of(kv ...string) *FieldMap {
	m := New()
	for i := 0; i < len(kv); i += 2 {
		value := ""
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		m.Set(kv[i], value)
	}
	return m
}

// Len returns the number of fields.
func (m *FieldMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key and whether the key is present.
func (m *FieldMap) Get(key string) (string, bool) {
	if m == nil || m.values == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *FieldMap) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// GetFold looks a key up ignoring case and accents. It returns the value,
// the key as stored, and whether a match was found. The first match in
// insertion order wins.
func (m *FieldMap) GetFold(key string) (string, string, bool) {
	if m == nil {
		return "", "", false
	}
	if v, ok := m.values[key]; ok {
		return v, key, true
	}
	want := Fold(key)
	for i, k := range m.keys {
		if m.folded[i] == want {
			return m.values[k], k, true
		}
	}
	return "", "", false
}

// Set stores value under key. An existing key keeps its position.
func (m *FieldMap) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
		m.folded = append(m.folded, Fold(key))
	}
	m.values[key] = value
}

// Add stores value under key without overwriting. When key is taken the
// value goes to the first free key_2, key_3, ... and the key actually used
// is returned.
func (m *FieldMap) Add(key, value string) string {
	if !m.Has(key) {
		m.Set(key, value)
		return key
	}
	for n := 2; ; n++ {
		candidate := key + "_" + strconv.Itoa(n)
		if !m.Has(candidate) {
			m.Set(candidate, value)
			return candidate
		}
	}
}

// Keys returns a copy of the keys in insertion order.
func (m *FieldMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Fields returns a copy of all fields in insertion order.
func (m *FieldMap) Fields() []Field {
	if m == nil {
		return nil
	}
	out := make([]Field, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Field{Key: k, Value: m.values[k]})
	}
	return out
}

// All iterates fields in insertion order.
func (m *FieldMap) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// foldedKey returns the precomputed folded form of the i-th key.
func (m *FieldMap) foldedKey(i int) string {
	return m.folded[i]
}

// MarshalJSON encodes the map as a JSON object preserving insertion order.
func (m *FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the map as a YAML mapping preserving insertion order.
func (m *FieldMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range m.All() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
		)
	}
	return node, nil
}

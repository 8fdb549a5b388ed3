// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package discovery

import (
	"strconv"

	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/tree"
)

// Flatten turns the children of node into a field-map. Leaf children are
// stored under their local name, composite children are flattened
// recursively and prefixed with "{child}_", and every child attribute is
// stored as "{child}_{attribute}". The n-th repeat (n > 1) of a sibling name
// carries a "_n" suffix on every key it contributes, so repeated groups stay
// aligned even when members omit fields.
func Flatten(node *tree.Node) *fieldmap.FieldMap {
	m := fieldmap.New()
	flattenInto(m, node)
	return m
}

// FlattenRecord is Flatten plus the node's own attributes, stored first
// under their bare names.
func FlattenRecord(node *tree.Node) *fieldmap.FieldMap {
	m := fieldmap.New()
	if node == nil {
		return m
	}
	for _, a := range node.Attrs {
		m.Add(a.Name, a.Value)
	}
	flattenInto(m, node)
	return m
}

func flattenInto(m *fieldmap.FieldMap, node *tree.Node) {
	if node == nil {
		return
	}
	seen := make(map[string]int)
	for _, child := range node.Children {
		seen[child.Name]++
		suffix := ""
		if n := seen[child.Name]; n > 1 {
			suffix = "_" + strconv.Itoa(n)
		}

		if child.HasChildren() {
			nested := Flatten(child)
			for k, v := range nested.All() {
				m.Add(child.Name+"_"+k+suffix, v)
			}
		} else {
			m.Add(child.Name+suffix, child.TrimmedText())
		}

		for _, a := range child.Attrs {
			m.Add(child.Name+"_"+a.Name+suffix, a.Value)
		}
	}
}

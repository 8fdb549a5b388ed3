// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package discovery locates the repeating element that represents one record
// in an XML tree of unknown structure and flattens each record into a
// field-map.
package discovery

import (
	"strings"

	"sanctions-normalizer/internal/fieldmap"
	"sanctions-normalizer/internal/tree"
)

// Tier identifies which search strategy produced the records.
type Tier int

const (
	TierNone Tier = iota
	TierDirectChildren
	TierContainer
	TierDeep
)

func (t Tier) String() string {
	switch t {
	case TierDirectChildren:
		return "direct_children"
	case TierContainer:
		return "container"
	case TierDeep:
		return "deep"
	default:
		return "none"
	}
}

// Group describes a set of same-named sibling elements.
type Group struct {
	Name      string `json:"name" yaml:"name"`
	Count     int    `json:"count" yaml:"count"`
	Container string `json:"container,omitempty" yaml:"container,omitempty"`
}

// Result is the outcome of Discover. Discarded lists groups that tied with a
// winning group on member count but lost because they were encountered later.
type Result struct {
	Tier           Tier
	RecordElements []string
	Elements       []*tree.Node
	Records        []*fieldmap.FieldMap
	Discarded      []Group
}

// Empty reports whether no records were found.
func (r Result) Empty() bool {
	return len(r.Records) == 0
}

// RecordElement returns the winning element names joined by ",".
func (r Result) RecordElement() string {
	return strings.Join(r.RecordElements, ",")
}

// DiscoverRecords returns only the flattened records found under root.
func DiscoverRecords(root *tree.Node) []*fieldmap.FieldMap {
	return Discover(root).Records
}

// Discover runs the three search tiers in order and stops at the first that
// yields records: direct children of root, children of container elements,
// then every descendant. An empty Result means no repeating element exists
// at any depth.
func Discover(root *tree.Node) Result {
	if root == nil {
		return Result{}
	}

	if winner, discarded := repeatingGroup(root.Children, true); winner != nil {
		return build(TierDirectChildren, [][]*tree.Node{winner}, discarded)
	}

	var (
		groups    [][]*tree.Node
		discarded []Group
	)
	for _, container := range root.Children {
		if !isContainer(container) {
			continue
		}
		winner, lost := repeatingGroup(container.Children, true)
		if winner == nil {
			continue
		}
		groups = append(groups, winner)
		for _, g := range lost {
			g.Container = container.Name
			discarded = append(discarded, g)
		}
	}
	if len(groups) > 0 {
		return build(TierContainer, groups, discarded)
	}

	var composites []*tree.Node
	root.Walk(func(n *tree.Node) {
		if n.HasChildren() {
			composites = append(composites, n)
		}
	})
	if winner, discarded := repeatingGroup(composites, false); winner != nil {
		return build(TierDeep, [][]*tree.Node{winner}, discarded)
	}

	return Result{}
}

// isContainer reports whether n has at least two children and none of them
// carry inline text.
func isContainer(n *tree.Node) bool {
	if len(n.Children) < 2 {
		return false
	}
	for _, c := range n.Children {
		if c.HasInlineText() {
			return false
		}
	}
	return true
}

// repeatingGroup groups nodes by local name and returns the members of the
// largest group having more than one member. When requireComposite is set
// the group's first member must have children. Ties go to the group that
// was encountered first; the other tied groups are returned as discarded.
func repeatingGroup(nodes []*tree.Node, requireComposite bool) ([]*tree.Node, []Group) {
	var order []string
	members := make(map[string][]*tree.Node)
	for _, n := range nodes {
		if _, ok := members[n.Name]; !ok {
			order = append(order, n.Name)
		}
		members[n.Name] = append(members[n.Name], n)
	}

	best := ""
	for _, name := range order {
		group := members[name]
		if len(group) < 2 {
			continue
		}
		if requireComposite && !group[0].HasChildren() {
			continue
		}
		if best == "" || len(group) > len(members[best]) {
			best = name
		}
	}
	if best == "" {
		return nil, nil
	}

	var discarded []Group
	for _, name := range order {
		if name == best || len(members[name]) != len(members[best]) {
			continue
		}
		if requireComposite && !members[name][0].HasChildren() {
			continue
		}
		discarded = append(discarded, Group{Name: name, Count: len(members[name])})
	}
	return members[best], discarded
}

func build(tier Tier, groups [][]*tree.Node, discarded []Group) Result {
	r := Result{Tier: tier, Discarded: discarded}
	for _, group := range groups {
		r.RecordElements = append(r.RecordElements, group[0].Name)
		for _, n := range group {
			r.Elements = append(r.Elements, n)
			r.Records = append(r.Records, FlattenRecord(n))
		}
	}
	return r
}

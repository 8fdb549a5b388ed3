// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package tree holds the parsed XML document shape consumed by record
// discovery. Nodes are built once by Parse and never mutated afterwards.
package tree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrEmptyDocument is returned when the input holds no root element.
var ErrEmptyDocument = errors.New("document has no root element")

// Attr is a single attribute with its namespace prefix removed.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the source tree.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// HasChildren reports whether the node is a composite element.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// TrimmedText returns the node's character data without surrounding whitespace.
func (n *Node) TrimmedText() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Text)
}

// HasInlineText reports whether the node carries non-whitespace character data.
func (n *Node) HasInlineText() bool {
	return n.TrimmedText() != ""
}

// Walk visits every descendant of n in document order, excluding n itself.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	for _, child := range n.Children {
		visit(child)
		child.Walk(visit)
	}
}

// Parse reads an XML document and returns its root element. Namespace
// prefixes are dropped from element and attribute names; declared non-UTF-8
// encodings are decoded transparently.
func Parse(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		root  *Node
		stack []*Node
		text  = map[*Node]*bytes.Buffer{}
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing XML: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				node.Attrs = append(node.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("error parsing XML: multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("error parsing XML: unexpected end element %s", t.Name.Local)
			}
			node := stack[len(stack)-1]
			if buf, ok := text[node]; ok {
				node.Text = buf.String()
				delete(text, node)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			node := stack[len(stack)-1]
			buf, ok := text[node]
			if !ok {
				buf = &bytes.Buffer{}
				text[node] = buf
			}
			buf.Write(t)
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("error parsing XML: unclosed element %s", stack[len(stack)-1].Name)
	}
	return root, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

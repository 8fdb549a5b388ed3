// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fieldmap

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var indexSuffix = regexp.MustCompile(`^(.*?)_(\d+)$`)

// Fold returns the comparison form of a key: case folded with combining
// accents removed. Transformers are built per call because they carry
// state and records are normalized concurrently.
func Fold(s string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripAccents, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// ContainsFold reports whether sub occurs in s ignoring case and accents.
func ContainsFold(s, sub string) bool {
	return strings.Contains(Fold(s), Fold(sub))
}

// SplitIndex separates a trailing "_<n>" suffix from key. Keys without a
// numeric suffix return an empty index.
func SplitIndex(key string) (base, index string) {
	if m := indexSuffix.FindStringSubmatch(key); m != nil {
		return m[1], m[2]
	}
	return key, ""
}

// Segments splits a flattened key into its lower-cased "_" separated parts.
func Segments(key string) []string {
	return strings.Split(strings.ToLower(key), "_")
}

// LastSegment returns the final lower-cased "_" separated part of key,
// ignoring a numeric repeat suffix.
func LastSegment(key string) string {
	base, _ := SplitIndex(key)
	parts := Segments(base)
	return parts[len(parts)-1]
}

// HasSegment reports whether any "_" separated part of key equals one of
// the given lower-case tokens.
func HasSegment(key string, tokens ...string) bool {
	for _, part := range Segments(key) {
		for _, token := range tokens {
			if part == token {
				return true
			}
		}
	}
	return false
}

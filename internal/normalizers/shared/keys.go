// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package shared holds key classification helpers used by more than one
// normalizer.
package shared

import (
	"regexp"
	"strings"

	"sanctions-normalizer/internal/fieldmap"
)

var uidGroup = regexp.MustCompile(`(?i)uid_(\d+)`)

// DefaultGroup is the group key of fields carrying no index.
const DefaultGroup = "default"

// IsAliasKey reports whether key belongs to an alias list. EU "nameAlias"
// keys are not alias keys because the first nameAlias is the primary name.
func IsAliasKey(key string) bool {
	return fieldmap.HasSegment(key, "aka", "akalist", "alias", "aliases")
}

// IsRelationalKey reports whether key names a relative of the subject.
func IsRelationalKey(key string) bool {
	k := strings.ToLower(key)
	for _, term := range []string{"father", "husband", "mother", "parent", "spouse", "guardian", "patronymic"} {
		if strings.Contains(k, term) {
			return true
		}
	}
	return false
}

// NotAlias wraps m so alias keys are never selected.
func NotAlias(m fieldmap.Matcher) fieldmap.Matcher {
	return fieldmap.Excluding(m, IsAliasKey)
}

// PersonalPatterns builds Pattern matchers that skip alias and relational keys.
func PersonalPatterns(names ...string) []fieldmap.Matcher {
	out := make([]fieldmap.Matcher, len(names))
	for i, n := range names {
		out[i] = fieldmap.Excluding(fieldmap.Pattern(n), func(key string) bool {
			return IsAliasKey(key) || IsRelationalKey(key)
		})
	}
	return out
}

// GroupKey derives the repeat group of a flattened key: a trailing "_<n>"
// suffix wins, then a "uid_<n>" marker, else DefaultGroup.
func GroupKey(key string) string {
	if _, index := fieldmap.SplitIndex(key); index != "" {
		return index
	}
	if m := uidGroup.FindStringSubmatch(key); m != nil {
		return "uid_" + m[1]
	}
	return DefaultGroup
}

// JoinNonEmpty joins the non-blank parts with sep after trimming them.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// IsPlaceholder reports values that stand for "no data".
func IsPlaceholder(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "-", "--", "n/a", "na", "none", "nil", "null", "unknown", "not available":
		return true
	}
	return false
}

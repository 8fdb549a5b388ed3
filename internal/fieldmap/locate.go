// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fieldmap

import (
	"iter"
	"regexp"
	"strings"
)

// NotFoundSource is the SourceField of a Result that matched nothing.
const NotFoundSource = "No source found"

// Result is a single extracted value with the key it came from. Secondary
// carries an optional auxiliary tag such as a confidence label.
type Result struct {
	Value       string `json:"value" yaml:"value"`
	SourceField string `json:"source_field" yaml:"source_field"`
	Secondary   string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
}

// NotFound returns the sentinel Result used to represent absence.
func NotFound() Result {
	return Result{SourceField: NotFoundSource}
}

// Found reports whether r came from a source field.
func (r Result) Found() bool {
	return r.SourceField != "" && r.SourceField != NotFoundSource
}

// Matcher selects candidate keys of a FieldMap in priority order.
// Implementations are the variants below; the set is closed.
type Matcher interface {
	candidates(m *FieldMap) iter.Seq[int]
}

type patternMatcher struct{ name string }

type exactMatcher struct{ name string }

type containsMatcher struct{ sub string }

type regexMatcher struct{ re *regexp.Regexp }

type excludingMatcher struct {
	inner  Matcher
	reject func(key string) bool
}

// Pattern matches a key equal to name ignoring case, and failing that any
// key containing name.
func Pattern(name string) Matcher { return patternMatcher{name: name} }

// Exact matches only a key equal to name ignoring case.
func Exact(name string) Matcher { return exactMatcher{name: name} }

// Contains matches any key containing sub ignoring case.
func Contains(sub string) Matcher { return containsMatcher{sub: sub} }

// Regex matches keys accepted by re.
func Regex(re *regexp.Regexp) Matcher { return regexMatcher{re: re} }

// Excluding drops candidates of m whose key satisfies reject.
func Excluding(m Matcher, reject func(key string) bool) Matcher {
	return excludingMatcher{inner: m, reject: reject}
}

// Patterns converts names into Pattern matchers.
func Patterns(names ...string) []Matcher {
	out := make([]Matcher, len(names))
	for i, n := range names {
		out[i] = Pattern(n)
	}
	return out
}

func (p patternMatcher) candidates(m *FieldMap) iter.Seq[int] {
	want := Fold(p.name)
	return func(yield func(int) bool) {
		for i := range m.Len() {
			if m.foldedKey(i) == want && !yield(i) {
				return
			}
		}
		for i := range m.Len() {
			k := m.foldedKey(i)
			if k != want && strings.Contains(k, want) && !yield(i) {
				return
			}
		}
	}
}

func (e exactMatcher) candidates(m *FieldMap) iter.Seq[int] {
	want := Fold(e.name)
	return func(yield func(int) bool) {
		for i := range m.Len() {
			if m.foldedKey(i) == want && !yield(i) {
				return
			}
		}
	}
}

func (c containsMatcher) candidates(m *FieldMap) iter.Seq[int] {
	want := Fold(c.sub)
	return func(yield func(int) bool) {
		for i := range m.Len() {
			if strings.Contains(m.foldedKey(i), want) && !yield(i) {
				return
			}
		}
	}
}

func (r regexMatcher) candidates(m *FieldMap) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, k := range m.keys {
			if r.re.MatchString(k) && !yield(i) {
				return
			}
		}
	}
}

func (e excludingMatcher) candidates(m *FieldMap) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range e.inner.candidates(m) {
			if e.reject(m.keys[i]) {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}

// IsBlank reports whether a value is empty after trimming whitespace.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// Locate tries each pattern in order, exact key first and then substring,
// and returns the first non-blank value. The sentinel NotFound result is
// returned when nothing matches.
func Locate(m *FieldMap, patterns ...string) Result {
	return LocateWith(m, Patterns(patterns...)...)
}

// LocateWith is Locate over arbitrary matchers.
func LocateWith(m *FieldMap, matchers ...Matcher) Result {
	if m == nil {
		return NotFound()
	}
	for _, matcher := range matchers {
		for i := range matcher.candidates(m) {
			k := m.keys[i]
			if v := m.values[k]; !IsBlank(v) {
				return Result{Value: strings.TrimSpace(v), SourceField: k}
			}
		}
	}
	return NotFound()
}

// Present returns the first key selected by the matchers whether or not its
// value is blank. It distinguishes "field present but empty" from absence.
func Present(m *FieldMap, matchers ...Matcher) (Result, bool) {
	if m == nil {
		return NotFound(), false
	}
	for _, matcher := range matchers {
		for i := range matcher.candidates(m) {
			k := m.keys[i]
			return Result{Value: strings.TrimSpace(m.values[k]), SourceField: k}, true
		}
	}
	return NotFound(), false
}

// FindAll returns every non-blank match across all matchers, in matcher
// order and then insertion order, each key at most once.
func FindAll(m *FieldMap, matchers ...Matcher) []Result {
	if m == nil {
		return nil
	}
	var out []Result
	seen := make(map[int]bool)
	for _, matcher := range matchers {
		for i := range matcher.candidates(m) {
			if seen[i] {
				continue
			}
			seen[i] = true
			k := m.keys[i]
			if v := m.values[k]; !IsBlank(v) {
				out = append(out, Result{Value: strings.TrimSpace(v), SourceField: k})
			}
		}
	}
	return out
}

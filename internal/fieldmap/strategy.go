// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fieldmap

// Strategy is one named tier of a priority ladder.
type Strategy[T any] struct {
	Name string
	Run  func(m *FieldMap) (T, bool)
}

// FirstOf evaluates strategies in order and returns the result and name of
// the first one that succeeds. Later strategies are never run.
func FirstOf[T any](m *FieldMap, strategies ...Strategy[T]) (T, string, bool) {
	for _, s := range strategies {
		if v, ok := s.Run(m); ok {
			return v, s.Name, true
		}
	}
	var zero T
	return zero, "", false
}

// LocateStrategy wraps a matcher list as a Strategy yielding a Result.
func LocateStrategy(name string, matchers ...Matcher) Strategy[Result] {
	return Strategy[Result]{
		Name: name,
		Run: func(m *FieldMap) (Result, bool) {
			r := LocateWith(m, matchers...)
			return r, r.Found()
		},
	}
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package recordid assigns a stable identifier to every record: the
// source's own id when it has one, otherwise a content hash.
package recordid

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"sanctions-normalizer/internal/fieldmap"
)

// Source values reported alongside a resolved identifier.
const (
	SourceContentHash = "content_hash"
	SourceGenerated   = "generated"
)

// DefaultIDFields are the system id keys recognised when none are configured.
var DefaultIDFields = []string{
	"uid", "logicalId", "dataid", "reference_number", "referencenumber",
	"euReferenceNumber", "unitedNationId", "Group_ID", "ent_num", "id",
}

// newHash is replaced in tests to exercise the fallback path.
var newHash = func() hash.Hash { return md5.New() }

// ContentHash returns the uppercase hex MD5 of the file's base name followed
// by the record's key=value pairs sorted by key. The result depends only on
// the base name and the field values, so it is stable across runs.
func ContentHash(fileName string, m *fieldmap.FieldMap) (string, error) {
	fields := m.Fields()
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })

	h := newHash()
	if _, err := io.WriteString(h, filepath.Base(fileName)+"\n"); err != nil {
		return "", fmt.Errorf("failed to hash file name: %w", err)
	}
	for _, f := range fields {
		if _, err := io.WriteString(h, f.Key+"="+f.Value+"\n"); err != nil {
			return "", fmt.Errorf("failed to hash field %s: %w", f.Key, err)
		}
	}
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil))), nil
}

// Resolve returns the record identifier and where it came from: the key of
// the first non-empty system id field, SourceContentHash, or SourceGenerated
// when hashing failed and a random id was issued instead.
func Resolve(fileName string, m *fieldmap.FieldMap, idFields []string) fieldmap.Result {
	if len(idFields) == 0 {
		idFields = DefaultIDFields
	}
	matchers := make([]fieldmap.Matcher, len(idFields))
	for i, f := range idFields {
		matchers[i] = fieldmap.Exact(f)
	}
	if r := fieldmap.LocateWith(m, matchers...); r.Found() {
		return r
	}

	if sum, err := ContentHash(fileName, m); err == nil {
		return fieldmap.Result{Value: sum, SourceField: SourceContentHash}
	}
	return fieldmap.Result{Value: Generate(), SourceField: SourceGenerated}
}

// Generate returns a random identifier in the same uppercase, dashless form
// as a content hash.
func Generate() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

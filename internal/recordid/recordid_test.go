// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package recordid

import (
	"crypto/md5"
	"errors"
	"hash"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanctions-normalizer/internal/fieldmap"
)

var upperHex32 = regexp.MustCompile(`^[0-9A-F]{32}$`)

func TestContentHash_Stable(t *testing.T) {
	a := fieldmap.Of("name", "Ali Khan", "CNIC", "12345-1234567-1")
	b := fieldmap.Of("CNIC", "12345-1234567-1", "name", "Ali Khan")

	h1, err := ContentHash("/data/in/list.xml", a)
	require.NoError(t, err)
	h2, err := ContentHash("other/dir/list.xml", b)
	require.NoError(t, err)

	assert.Regexp(t, upperHex32, h1)
	assert.Equal(t, h1, h2, "hash depends on base name and sorted fields only")

	again, err := ContentHash("/data/in/list.xml", a)
	require.NoError(t, err)
	assert.Equal(t, h1, again)
}

func TestContentHash_SensitiveToInputs(t *testing.T) {
	m := fieldmap.Of("name", "Ali Khan")
	base, err := ContentHash("list.xml", m)
	require.NoError(t, err)

	otherFile, err := ContentHash("list2.xml", m)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherFile)

	otherValue, err := ContentHash("list.xml", fieldmap.Of("name", "Ali  Khan"))
	require.NoError(t, err)
	assert.NotEqual(t, base, otherValue)
}

func TestResolve_SystemID(t *testing.T) {
	m := fieldmap.Of("akaList_aka_uid", "7", "UID", "36", "lastName", "X")

	got := Resolve("sdn.xml", m, nil)
	assert.Equal(t, fieldmap.Result{Value: "36", SourceField: "UID"}, got)

	got = Resolve("sdn.xml", m, []string{"lastName"})
	assert.Equal(t, "X", got.Value)
}

func TestResolve_FallsBackToContentHash(t *testing.T) {
	m := fieldmap.Of("name", "Ali Khan", "uid", " ")

	got := Resolve("list.csv", m, nil)
	want, err := ContentHash("list.csv", m)
	require.NoError(t, err)
	assert.Equal(t, fieldmap.Result{Value: want, SourceField: SourceContentHash}, got)
}

type failingHash struct{ hash.Hash }

func (failingHash) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestResolve_GeneratesIDWhenHashingFails(t *testing.T) {
	orig := newHash
	newHash = func() hash.Hash { return failingHash{md5.New()} }
	t.Cleanup(func() { newHash = orig })

	_, err := ContentHash("list.csv", fieldmap.Of("name", "X"))
	require.Error(t, err)

	got := Resolve("list.csv", fieldmap.Of("name", "X"), nil)
	assert.Equal(t, SourceGenerated, got.SourceField)
	assert.Regexp(t, upperHex32, got.Value)
}

func TestGenerate_Unique(t *testing.T) {
	assert.NotEqual(t, Generate(), Generate())
	assert.Regexp(t, upperHex32, Generate())
}

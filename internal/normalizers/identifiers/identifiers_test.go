// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package identifiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanctions-normalizer/internal/fieldmap"
)

func TestExtract_DirectCNICIsReportedOnce(t *testing.T) {
	m := fieldmap.Of("firstName", "Ali", "lastName", "Khan", "CNIC", "12345-1234567-1")

	got := Extract(m)
	require.Len(t, got, 1)
	assert.Equal(t, Record{Category: CNIC, Value: "12345-1234567-1", SourceField: "CNIC"}, got[0])
}

func TestExtract_CNICFromFreeText(t *testing.T) {
	m := fieldmap.Of("remarks", "Holds NIC 3520212345679 issued in Lahore")

	got := Extract(m)
	require.Len(t, got, 1)
	assert.Equal(t, Record{Category: CNIC, Value: "35202-1234567-9", SourceField: "remarks"}, got[0])
}

func TestExtract_OFACIdList(t *testing.T) {
	m := fieldmap.Of(
		"idList_id_idType", "Passport",
		"idList_id_idNumber", "A1234567",
		"idList_id_idType_2", "National ID No.",
		"idList_id_idNumber_2", "001-123",
		"idList_id_idType_3", "SSN",
		"idList_id_idNumber_3", "123-45-6789",
		"idList_id_idType_4", "Diplomatic Passport",
		"idList_id_idNumber_4", "D555",
	)

	got := Extract(m)
	assert.Equal(t, []Record{
		{Category: Passport, Value: "A1234567", SourceField: "idList_id_idNumber"},
		{Category: NationalID, Value: "001-123", SourceField: "idList_id_idNumber_2"},
		{Category: SSN, Value: "123-45-6789", SourceField: "idList_id_idNumber_3"},
	}, got)
}

func TestExtract_UNDocumentsPoolInCategoryOrder(t *testing.T) {
	m := fieldmap.Of(
		"INDIVIDUAL_DOCUMENT_TYPE_OF_DOCUMENT", "Passport",
		"INDIVIDUAL_DOCUMENT_NUMBER", "AB123456",
		"INDIVIDUAL_DOCUMENT_TYPE_OF_DOCUMENT_2", "National Identification Number",
		"INDIVIDUAL_DOCUMENT_NUMBER_2", "4210112345671",
	)

	got := Extract(m)
	assert.Equal(t, []Record{
		{Category: CNIC, Value: "42101-1234567-1", SourceField: "INDIVIDUAL_DOCUMENT_NUMBER_2"},
		{Category: Passport, Value: "AB123456", SourceField: "INDIVIDUAL_DOCUMENT_NUMBER"},
		{Category: NationalID, Value: "4210112345671", SourceField: "INDIVIDUAL_DOCUMENT_NUMBER_2"},
	}, got)
}

func TestExtract_EUIdentification(t *testing.T) {
	m := fieldmap.Of(
		"identification_identificationTypeCode", "passport",
		"identification_number", "X9921",
		"identification_identificationTypeCode_2", "id",
		"identification_number_2", "12345",
	)

	assert.Equal(t, []Record{
		{Category: Passport, Value: "X9921", SourceField: "identification_number"},
	}, Extract(m))
}

func TestExtract_GenericPassportFieldsAreShapeChecked(t *testing.T) {
	m := fieldmap.Of(
		"passport_number", "P12",
		"Passport_Details", "K-778899",
		"passport_issue_date", "2001-01-01",
		"Passport_Country", "Pakistan",
	)

	assert.Equal(t, []Record{
		{Category: Passport, Value: "K-778899", SourceField: "Passport_Details"},
	}, Extract(m))
}

func TestExtract_SSNScan(t *testing.T) {
	m := fieldmap.Of("remarks", "SSN 123-45-6789 and 987-65-4321")

	assert.Equal(t, []Record{
		{Category: SSN, Value: "123-45-6789", SourceField: "remarks"},
		{Category: SSN, Value: "987-65-4321", SourceField: "remarks"},
	}, Extract(m))
}

func TestExtract_NeverRepeatsCategoryAndValue(t *testing.T) {
	inputs := []*fieldmap.FieldMap{
		fieldmap.Of("CNIC", "1234512345671", "nic", "12345-1234567-1", "remarks", "CNIC 12345-1234567-1"),
		fieldmap.Of("idList_id_idType", "SSN", "idList_id_idNumber", "111-22-3333", "notes", "111-22-3333"),
		fieldmap.Of("passport", "AB1234", "passport_no", "AB1234", "document_type", "passport", "document_number", "AB1234"),
		fieldmap.Of(),
	}

	for _, m := range inputs {
		seen := map[[2]string]bool{}
		for _, r := range Extract(m) {
			k := [2]string{string(r.Category), r.Value}
			assert.False(t, seen[k], "duplicate %v", k)
			seen[k] = true
		}
	}
}

func TestIsValidCNIC(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"12345-1234567-1", true},
		{"1234512345671", true},
		{"1-2-3-4-5-1234567-1", true},
		{"12345-1234567", false},
		{"12345123456712", false},
		{"1234A12345671", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidCNIC(tt.in))
		})
	}
}

func TestNormalizeCNIC(t *testing.T) {
	assert.Equal(t, "12345-1234567-1", NormalizeCNIC("1234512345671"))
	assert.Equal(t, "12345-1234567-1", NormalizeCNIC("12345-1234567-1"))
	assert.Equal(t, "abc", NormalizeCNIC("abc"))

	for _, in := range []string{"1234512345671", "99999-0000000-9", "0000000000000"} {
		once := NormalizeCNIC(in)
		assert.Equal(t, once, NormalizeCNIC(once))
	}
}

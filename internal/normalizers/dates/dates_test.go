// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package dates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanctions-normalizer/internal/fieldmap"
)

func TestExtractBirthDates_OFACItems(t *testing.T) {
	m := fieldmap.Of(
		"dateOfBirthList_dateOfBirthItem_uid", "1",
		"dateOfBirthList_dateOfBirthItem_dateOfBirth", "12 Mar 1962",
		"dateOfBirthList_dateOfBirthItem_mainEntry", "true",
		"dateOfBirthList_dateOfBirthItem_uid_2", "2",
		"dateOfBirthList_dateOfBirthItem_dateOfBirth_2", "circa 1960",
		"dateOfBirthList_dateOfBirthItem_mainEntry_2", "false",
	)

	got := ExtractBirthDates(m)
	require.Len(t, got, 2)
	assert.Equal(t, BirthDate{
		Date:        "12 Mar 1962",
		Type:        BirthExact,
		Year:        "1962",
		IsMainEntry: true,
		SourceField: "dateOfBirthList_dateOfBirthItem_dateOfBirth",
	}, got[0])
	assert.Equal(t, BirthApproximately, got[1].Type)
	assert.Equal(t, "1960", got[1].Year)
	assert.False(t, got[1].IsMainEntry)
}

func TestExtractBirthDates_EUCircaFlag(t *testing.T) {
	m := fieldmap.Of(
		"birthdate", "",
		"birthdate_circa", "true",
		"birthdate_birthdate", "1955-06-01",
		"birthdate_year", "1955",
	)

	got := ExtractBirthDates(m)
	require.Len(t, got, 1)
	assert.Equal(t, "1955-06-01", got[0].Date)
	assert.Equal(t, BirthApproximately, got[0].Type)
	assert.Equal(t, "birthdate_birthdate", got[0].SourceField)
}

func TestExtractBirthDates_UNTriples(t *testing.T) {
	m := fieldmap.Of(
		"INDIVIDUAL_DATE_OF_BIRTH_TYPE_OF_DATE", "EXACT",
		"INDIVIDUAL_DATE_OF_BIRTH_DATE", "1973-08-15",
		"INDIVIDUAL_DATE_OF_BIRTH_TYPE_OF_DATE_2", "APPROXIMATELY",
		"INDIVIDUAL_DATE_OF_BIRTH_YEAR_2", "1970",
		"INDIVIDUAL_DATE_OF_BIRTH_TYPE_OF_DATE_3", "BETWEEN",
		"INDIVIDUAL_DATE_OF_BIRTH_FROM_YEAR_3", "1968",
		"INDIVIDUAL_DATE_OF_BIRTH_TO_YEAR_3", "1972",
	)

	got := ExtractBirthDates(m)
	require.Len(t, got, 3)

	assert.Equal(t, BirthDate{Date: "1973-08-15", Type: BirthExact, Year: "1973", SourceField: "INDIVIDUAL_DATE_OF_BIRTH_DATE"}, got[0])
	assert.Equal(t, BirthDate{Date: "1970", Type: BirthApproximately, Year: "1970", SourceField: "INDIVIDUAL_DATE_OF_BIRTH_YEAR_2"}, got[1])
	assert.Equal(t, BirthDate{Date: "1968-1972", Type: BirthApproximately, Year: "1968", SourceField: "INDIVIDUAL_DATE_OF_BIRTH_FROM_YEAR_3"}, got[2])
}

func TestExtractBirthDates_RemarkAddsToOtherTiers(t *testing.T) {
	m := fieldmap.Of(
		"dateOfBirth", "1980-01-01",
		"date_of_birth_remark", "possibly born in 1979",
		"INDIVIDUAL_PLACE_OF_BIRTH_NOTE", "near the border",
	)

	got := ExtractBirthDates(m)
	require.Len(t, got, 2)
	assert.Equal(t, BirthExact, got[0].Type)
	assert.Equal(t, BirthRemark, got[1].Type)
	assert.Equal(t, "1979", got[1].Year)
}

func TestExtractBirthDates_GenericFallback(t *testing.T) {
	tests := []struct {
		name   string
		fields *fieldmap.FieldMap
		want   BirthDate
	}{
		{
			name:   "numeric dob",
			fields: fieldmap.Of("DOB", "01-01-1970"),
			want:   BirthDate{Date: "01-01-1970", Type: BirthExact, Year: "1970", SourceField: "DOB"},
		},
		{
			name:   "year column preferred over empty birthdate",
			fields: fieldmap.Of("birthdate", "", "birthdate_circa", "false", "birthdate_year", "1951"),
			want:   BirthDate{Date: "1951", Type: BirthUnknown, Year: "1951", SourceField: "birthdate_year"},
		},
		{
			name:   "value without digits is skipped",
			fields: fieldmap.Of("date_of_birth", "unknown", "birth_year", "approx. 1965"),
			want:   BirthDate{Date: "approx. 1965", Type: BirthApproximately, Year: "1965", SourceField: "birth_year"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractBirthDates(tt.fields)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestExtractBirthDates_None(t *testing.T) {
	assert.Empty(t, ExtractBirthDates(fieldmap.Of("name", "X", "date_of_birth", "n/a")))
}

func TestExtractDeath_ConfirmedWithLocation(t *testing.T) {
	got := ExtractDeath(fieldmap.Of("remark", "Confirmed to have died in 2015. Location: Kabul"))

	require.NotNil(t, got)
	assert.Equal(t, DeathConfirmed, got.Type)
	assert.Contains(t, got.Date, "2015")
	assert.Contains(t, got.Location, "Kabul")
	assert.Equal(t, "remark", got.SourceField)
}

func TestParseDeathRemark(t *testing.T) {
	tests := []struct {
		text     string
		typ      DeathType
		date     string
		location string
	}{
		{"Confirmed to have died in Pakistan in December 2014. Review pursuant to resolution 2253.", DeathConfirmed, "December 2014", "Pakistan"},
		{"Reportedly deceased in 2016 in Syria", DeathReported, "2016", "Syria"},
		{"Death confirmed on 12/03/2018 at Quetta.", DeathConfirmed, "12/03/2018", "Quetta"},
		{"Died on 5 May 2011, Abbottabad", DeathReported, "5 May 2011", "Abbottabad"},
		{"Date of death: 2019-10-27", DeathReported, "2019-10-27", ""},
		{"Deceased in Quetta.", DeathReported, "", "Quetta"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseDeathRemark(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.typ, got.Type)
			assert.Equal(t, tt.date, got.Date)
			assert.Equal(t, tt.location, got.Location)
		})
	}
}

func TestParseDeathRemark_NoMatch(t *testing.T) {
	for _, text := range []string{
		"Studied in Cairo in 1990.",
		"Father's name is Ali.",
		"Brother of the deceased commander Mullah Omar.",
		"Associate of Abu X, who was killed in a drone strike.",
		"Not deceased; active in Quetta as of 2020.",
		"Passed away.",
		"",
	} {
		_, ok := ParseDeathRemark(text)
		assert.False(t, ok, text)
	}
}

func TestExtractDeath_FirstMatchingRemarkWins(t *testing.T) {
	got := ExtractDeath(fieldmap.Of(
		"remarks", "Listed for financing.",
		"COMMENTS1", "Reportedly died in 2001.",
		"notes", "Confirmed died 2002",
	))
	require.NotNil(t, got)
	assert.Equal(t, "COMMENTS1", got.SourceField)
	assert.Equal(t, "2001", got.Date)

	assert.Nil(t, ExtractDeath(fieldmap.Of("remarks", "Nothing here")))
}

func TestExtractListing(t *testing.T) {
	m := fieldmap.Of(
		"LISTED_ON", "2001-01-25",
		"LAST_DAY_UPDATED_VALUE", "2007-07-27",
		"LAST_DAY_UPDATED_VALUE_2", "2010-11-23; 2011-04-04",
		"effective_date", "2001-02-01",
	)

	got, ok := ExtractListing(m)
	require.True(t, ok)
	assert.Equal(t, "2001-01-25", got.ListedOn)
	assert.Equal(t, []string{"2007-07-27", "2010-11-23", "2011-04-04"}, got.LastUpdated)
	assert.Equal(t, "2001-02-01", got.EffectiveDate)
	assert.Equal(t, []string{"LISTED_ON", "LAST_DAY_UPDATED_VALUE", "LAST_DAY_UPDATED_VALUE_2", "effective_date"}, got.SourceFields)
}

func TestExtractListing_SplitsAndOmitsWhenAbsent(t *testing.T) {
	got, ok := ExtractListing(fieldmap.Of("Last_Updated", "01/02/2020|03/04/2021, 05/06/2022"))
	require.True(t, ok)
	assert.Equal(t, []string{"01/02/2020", "03/04/2021", "05/06/2022"}, got.LastUpdated)
	assert.Empty(t, got.ListedOn)

	_, ok = ExtractListing(fieldmap.Of("name", "X"))
	assert.False(t, ok)

	rec := Extract(fieldmap.Of("name", "X"))
	assert.Equal(t, []ListingInfo{}, rec.ListingDates)
	assert.Equal(t, []BirthDate{}, rec.BirthDates)
	assert.Nil(t, rec.DeathDate)
}

func TestExtractDeath_IgnoresRemarksAboutOthers(t *testing.T) {
	m := fieldmap.Of(
		"remarks", "Brother of the deceased commander Mullah Omar.",
		"COMMENTS1", "Associate of Abu X, who was killed in a drone strike.",
	)
	assert.Nil(t, ExtractDeath(m))
	assert.Nil(t, Extract(m).DeathDate)
}

func TestYear(t *testing.T) {
	assert.Equal(t, "1962", Year("12 Mar 1962"))
	assert.Equal(t, "2015", Year("in 2015."))
	assert.Empty(t, Year("1700 or 2150"))
	assert.Empty(t, Year("12345"))
}

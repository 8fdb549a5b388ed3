// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package dates

import (
	"regexp"
	"strings"

	"sanctions-normalizer/internal/fieldmap"
)

var (
	remarkFields = fieldmap.Patterns(
		"remarks", "remark", "comments", "comments1", "comment",
		"other_information", "otherinformation", "additional_information",
		"additionalinformation", "notes", "note",
	)

	// Phrases announcing the subject's own death; group 1 is the text that
	// follows. A bare "deceased" or "killed" does not count.
	deathPhrases = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bconfirmed\s+(?:to\s+have\s+)?died\b\s*(.*)`),
		regexp.MustCompile(`(?i)\bdeath\s+(?:was\s+)?(?:confirmed|reported)\b\s*(.*)`),
		regexp.MustCompile(`(?i)\b(?:reportedly\s+)?(?:died|deceased)\s+((?:in|on)\b.*)`),
		regexp.MustCompile(`(?i)\bdate\s+of\s+death\b\s*:?\s*(.*)`),
	}

	monthDatePattern = regexp.MustCompile(`(?i)\b(?:\d{1,2}\s+)?(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+(?:\d{1,2},?\s+)?\d{4}\b`)

	numericDatePattern = regexp.MustCompile(`\b(?:\d{4}-\d{1,2}-\d{1,2}|\d{1,2}[./-]\d{1,2}[./-]\d{2,4})\b`)

	locationLabel    = regexp.MustCompile(`(?i)\blocation\s*:\s*`)
	leadingPrep      = regexp.MustCompile(`(?i)^(?:in|at|on|near)\b\s*`)
	trailingPrep     = regexp.MustCompile(`(?i)\s*\b(?:in|at|on|near)$`)
	sentenceBoundary = regexp.MustCompile(`[.;]\s+|[.;]$`)
)

// ExtractDeath scans remark fields for a death announcement and mines the
// date and location that follow it. The first remark that matches wins.
func ExtractDeath(m *fieldmap.FieldMap) *DeathInfo {
	for _, r := range fieldmap.FindAll(m, remarkFields...) {
		if info, ok := ParseDeathRemark(r.Value); ok {
			info.SourceField = r.SourceField
			return &info
		}
	}
	return nil
}

// ParseDeathRemark looks for a death phrase in text. The matched phrase
// decides the type: CONFIRMED when it says "confirmed", else REPORTED.
func ParseDeathRemark(text string) (DeathInfo, bool) {
	for _, phrase := range deathPhrases {
		loc := phrase.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		tail := text[loc[2]:loc[3]]

		info := DeathInfo{Type: DeathReported}
		if strings.Contains(strings.ToLower(text[loc[0]:loc[2]]), "confirm") {
			info.Type = DeathConfirmed
		}

		date, rest := mineDate(tail)
		info.Date = date
		info.Location = mineLocation(rest)
		return info, true
	}
	return DeathInfo{}, false
}

// mineDate returns the first date token in s, trying month-name dates,
// numeric dates and bare years in that order, and s with it removed.
func mineDate(s string) (string, string) {
	for _, re := range []*regexp.Regexp{monthDatePattern, numericDatePattern, yearPattern} {
		if loc := re.FindStringIndex(s); loc != nil {
			return strings.TrimSpace(s[loc[0]:loc[1]]), s[:loc[0]] + s[loc[1]:]
		}
	}
	return "", s
}

// mineLocation cleans what remains of a death phrase once the date is
// removed and returns the first non-empty fragment.
func mineLocation(s string) string {
	s = locationLabel.ReplaceAllString(s, "")
	for _, part := range sentenceBoundary.Split(s, -1) {
		part = strings.Trim(part, " \t\r\n.,;:()-")
		for {
			cleaned := trailingPrep.ReplaceAllString(leadingPrep.ReplaceAllString(part, ""), "")
			cleaned = strings.Trim(cleaned, " \t\r\n.,;:()-")
			if cleaned == part {
				break
			}
			part = cleaned
		}
		if part != "" {
			return part
		}
	}
	return ""
}

// Package cohort reads intake round names out of free-text labels and splits
// the combined "name, role" answers respondents type into surveys.
package cohort

import (
	"regexp"
	"strings"
)

// space matches the whitespace a survey export may carry, including NBSP
// and the other Unicode space separators.
const space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var (
	cohortPattern = regexp.MustCompile(`^(?:(.*?)` + space + `+)?(Winter|Spring|Summer|Fall)` + space + `+(\d{4})`)
	yearPattern   = regexp.MustCompile(`\d{4}`)
)

// ParseCohort returns "<region> <season> <year>" from a label such as
// "Victoria Spring 2021 Applications", or "" when the label names no season
// and year. Season names are case-sensitive.
func ParseCohort(label string) string {
	m := cohortPattern.FindStringSubmatch(label)
	if m == nil {
		return ""
	}
	region, season, year := m[1], m[2], m[3]
	if region == "" {
		return season + " " + year
	}
	return region + " " + season + " " + year
}

// ParseYear returns the first four-digit run in cohort, or "".
func ParseYear(cohort string) string {
	return yearPattern.FindString(cohort)
}

// SplitNameRole splits at the first comma, or failing that the first dash.
// A hyphenated name without a comma is split at the hyphen.
func SplitNameRole(text string) (name, role string) {
	sep := strings.Index(text, ",")
	if sep < 0 {
		sep = strings.Index(text, "-")
	}
	if sep < 0 {
		return strings.TrimSpace(text), ""
	}
	return strings.TrimSpace(text[:sep]), strings.TrimSpace(text[sep+1:])
}

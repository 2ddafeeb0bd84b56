package intake

import (
	"strings"
	"testing"

	"intake-workers/internal/common/logger"
	"intake-workers/internal/sheet"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func resultsHeader() []string {
	h := []string{
		ResultsScore, ResultsStatus, ResultsOrganization, ResultsCohort, ResultsLocation,
		ResultsBudget, ResultsFullTime, ResultsPartTime, ResultsVolunteers, ResultsPartner,
		ResultsBursary, ResultsFoundation, ResultsBanking,
	}
	h = append(h, ResultsParticipantRoles[:]...)
	h = append(h, ResultsWebsite, ResultsMission, ResultsTimeCommitment, ResultsAppForm)
	return append(h, SubScoreColumns[:]...)
}

func rawHeader() []string {
	h := []string{
		RawCohort, RawOrganization, RawLocation, RawBudget, RawFullTime, RawPartTime,
		RawVolunteers, RawBursary, RawFoundation, RawBanking,
	}
	h = append(h, RawParticipantRoles[:]...)
	return append(h, RawWebsite, RawMission, RawTimeCommitment, RawProcessed)
}

func ledgerHeader() []string {
	return []string{
		LedgerOrganization, LedgerCohort, LedgerDate, LedgerName, LedgerRole,
		LedgerEmail, LedgerLocation, LedgerBudget, LedgerBanking,
	}
}

func surveyHeader() []string {
	return []string{
		"Respondent ID", SurveyOrganization, SurveyNamePosition, SurveyEmail,
		SurveyRegions, SurveyBudget, SurveyBank,
	}
}

// row builds a row for header with the named cells set.
func row(header []string, cells map[string]string) []string {
	idx := sheet.NewHeaderIndex(header)
	values := make([]string, len(header))
	for name, v := range cells {
		idx.Field(name).Put(values, v)
	}
	return values
}

func newTestPipeline(t *testing.T) *Pipeline {
	return New(logger.NewTestLogger(t))
}

func surveyRow(org, namePosition string) []string {
	return row(surveyHeader(), map[string]string{
		SurveyOrganization: org,
		SurveyNamePosition: namePosition,
		SurveyEmail:        "contact@" + org + ".org",
		SurveyRegions:      "BC",
		SurveyBudget:       "$0 - $100,000",
		SurveyBank:         "Credit Union",
	})
}

func ledgerRow(org, cohortName string) []string {
	return row(ledgerHeader(), map[string]string{
		LedgerOrganization: org,
		LedgerCohort:       cohortName,
	})
}

// evalSum evaluates a SUM formula written by sheet.SumFormula against one
// row's values, the way the spreadsheet shows the live total.
func evalSum(formula string, values []string) (total int, ok bool) {
	body, found := strings.CutPrefix(formula, "=SUM(")
	if !found {
		return 0, false
	}
	body, found = strings.CutSuffix(body, ")")
	if !found || body == "" {
		return 0, false
	}

	for _, ref := range strings.Split(body, ",") {
		from, to, isRange := strings.Cut(ref, ":")
		first := cellColumn(from)
		last := first
		if isRange {
			last = cellColumn(to)
		}
		if first < 0 || last < first {
			return 0, false
		}
		for col := first; col <= last; col++ {
			total += sheet.Field{Col: col}.Int(values)
		}
	}
	return total, true
}

// cellColumn returns the 0-based column of an A1 reference such as "AC7".
func cellColumn(ref string) int {
	ref = strings.TrimSpace(ref)
	end := 0
	for end < len(ref) && ref[end] >= 'A' && ref[end] <= 'Z' {
		end++
	}
	if end == 0 || end == len(ref) {
		return -1
	}
	if _, ok := sheet.ParseInt(ref[end:]); !ok {
		return -1
	}
	col := 0
	for _, r := range ref[:end] {
		col = col*26 + int(r-'A'+1)
	}
	return col - 1
}

func TestEvalSumHelper(t *testing.T) {
	values := []string{"", "2", "x", "3", "4"}

	total, ok := evalSum("=SUM(B7:E7)", values)
	assert.True(t, ok)
	assert.Equal(t, 9, total)

	total, ok = evalSum(sheet.SumFormula(7, []int{1, 4}), values)
	assert.True(t, ok)
	assert.Equal(t, 6, total)

	for col := 0; col < 80; col++ {
		assert.Equal(t, col, cellColumn(sheet.ColumnLetter(col)+"1"))
	}

	_, ok = evalSum("17", values)
	assert.False(t, ok)
	_, ok = evalSum("=SUM(E7:B7)", values)
	assert.False(t, ok)
	_, ok = evalSum("=SUM()", values)
	assert.False(t, ok)
}

package scoring

import (
	"testing"

	"intake-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestHeadcountScore_Boundaries(t *testing.T) {
	counts := []int{0, 5, 6, 10, 11, 20, 21}
	want := []int{2, 2, 3, 3, 4, 4, 5}

	for i, n := range counts {
		assert.Equal(t, want[i], HeadcountScore(n), "count %d", n)
	}
	assert.Equal(t, 1, HeadcountScore(-1))
}

func TestHeadcountScore_Monotonic(t *testing.T) {
	prev := HeadcountScore(-50)
	for n := -49; n <= 100; n++ {
		got := HeadcountScore(n)
		assert.GreaterOrEqual(t, got, prev, "count %d", n)
		prev = got
	}
}

func TestBudgetScore(t *testing.T) {
	tests := []struct {
		bracket string
		want    int
	}{
		{"$500,001 - 1,000,000", 5},
		{"$1,000,001 or more", 4},
		{"$250,001 - $500,000", 3},
		{"$100,001 - $250,000", 2},
		{"$0 - $100,000", 1},
		{"$500,001–1,000,000", 5},
		{"$0–$100,000", 1},
		{"$250,001 – $500,000", 3},
		{"", 0},
		{"about a million", 0},
		{"$0 - $100,000 ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.bracket, func(t *testing.T) {
			assert.Equal(t, tt.want, BudgetScore(tt.bracket))
		})
	}
}

func TestTeamScore_Cascade(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  int
	}{
		{"board and executive director", []string{"Board Member", "Executive Director"}, 5},
		{"board only", []string{"Board Member"}, 4},
		{"executive director only", []string{"Executive Director"}, 3},
		{"staff", []string{"Staff"}, 2},
		{"senior staff", []string{"Senior Staff"}, 2},
		{"volunteer", []string{"Volunteer"}, 1},
		{"none", nil, 0},
		{"volunteer and staff", []string{"Volunteer", "Staff"}, 2},
		{"board beats staff", []string{"Staff", "Volunteer", "Board Member"}, 4},
		{"case sensitive", []string{"executive director", "board member"}, 0},
		{"substring", []string{"Interim Executive Director"}, 3},
		{"blank slots", []string{"", "", "Volunteer", ""}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TeamScore(tt.roles...))
		})
	}
}

func TestTeamRule(t *testing.T) {
	assert.Equal(t, "staff", TeamRule("Volunteer", "Staff"))
	assert.Equal(t, "", TeamRule("Treasurer"))
}

func TestYesNoScores(t *testing.T) {
	assert.Equal(t, 5, PartnerScore("YES"))
	assert.Equal(t, 1, PartnerScore("no"))
	assert.Equal(t, 1, PartnerScore(" yes"))
	assert.Equal(t, 5, TimeCommitmentScore("Yes"))
	assert.Equal(t, 1, TimeCommitmentScore(""))
}

func TestFormCompletionScore(t *testing.T) {
	assert.Equal(t, 5, FormCompletionScore("Yes"))
	assert.Equal(t, 3, FormCompletionScore("HALF"))
	assert.Equal(t, 1, FormCompletionScore("no"))
	assert.Equal(t, 0, FormCompletionScore("partial"))
	assert.Equal(t, 0, FormCompletionScore(""))
}

func TestScore_TotalIsSumAndDeterministic(t *testing.T) {
	applicants := []models.ApplicantRecord{
		{},
		{
			Partner:           "yes",
			Budget:            "$1,000,001 or more",
			FullTimeEmployees: 25,
			PartTimeEmployees: 8,
			Volunteers:        -3,
			ParticipantRoles:  [4]string{"Executive Director", "Board Member"},
			TimeCommitment:    "YES",
			FormCompletion:    "half",
		},
		{
			Budget:            "$0 - $100,000",
			FullTimeEmployees: 11,
			ParticipantRoles:  [4]string{"", "Volunteer", "Staff", ""},
			FormCompletion:    "no",
		},
	}

	for _, a := range applicants {
		first := Score(a)
		second := Score(a)
		assert.Equal(t, first, second)

		sum := 0
		for _, v := range first.Values() {
			sum += v
		}
		assert.Equal(t, sum, first.Total())
	}
}

func TestScore_FullApplicant(t *testing.T) {
	got := Score(models.ApplicantRecord{
		Partner:           "yes",
		Budget:            "$1,000,001 or more",
		FullTimeEmployees: 25,
		PartTimeEmployees: 8,
		Volunteers:        -3,
		ParticipantRoles:  [4]string{"Executive Director", "Board Member"},
		TimeCommitment:    "YES",
		FormCompletion:    "half",
	})

	assert.Equal(t, models.ScoreBreakdown{
		Partner:        5,
		Budget:         4,
		FullTime:       5,
		PartTime:       3,
		Volunteer:      1,
		Team:           5,
		TimeCommitment: 5,
		FormCompletion: 3,
	}, got)
	assert.Equal(t, 31, got.Total())
}

// Package scoring implements the fixed applicant rubric. Everything here is
// pure; reading and writing the sheet happens in package intake.
package scoring

import (
	"strings"
)

// Budget bracket labels as they appear on the application form.
const (
	BudgetUpTo100K = "$0 - $100,000"
	BudgetUpTo250K = "$100,001 - $250,000"
	BudgetUpTo500K = "$250,001 - $500,000"
	BudgetUpTo1M   = "$500,001 - 1,000,000"
	BudgetOver1M   = "$1,000,001 or more"
)

var budgetScores = map[string]int{
	BudgetUpTo1M:   5,
	BudgetOver1M:   4,
	BudgetUpTo500K: 3,
	BudgetUpTo250K: 2,
	BudgetUpTo100K: 1,
}

// Form exports sometimes turn the hyphen in a bracket label into a dash.
var dashReplacer = strings.NewReplacer(
	" – ", " - ",
	" — ", " - ",
	"–", " - ",
	"—", " - ",
)

// Participant role labels used by the team rules.
const (
	RoleExecutiveDirector = "Executive Director"
	RoleBoardMember       = "Board Member"
	RoleSeniorStaff       = "Senior Staff"
	RoleStaff             = "Staff"
	RoleVolunteer         = "Volunteer"
)

type teamRule struct {
	name  string
	match func(roles string) bool
	score int
}

// teamRules are evaluated in order; the first match wins.
var teamRules = []teamRule{
	{"executive director and board", func(r string) bool {
		return strings.Contains(r, RoleExecutiveDirector) && strings.Contains(r, RoleBoardMember)
	}, 5},
	{"board", func(r string) bool { return strings.Contains(r, RoleBoardMember) }, 4},
	{"executive director", func(r string) bool { return strings.Contains(r, RoleExecutiveDirector) }, 3},
	{"staff", func(r string) bool {
		return strings.Contains(r, RoleSeniorStaff) || strings.Contains(r, RoleStaff)
	}, 2},
	{"volunteer", func(r string) bool { return strings.Contains(r, RoleVolunteer) }, 1},
}

func isYes(s string) bool {
	return strings.ToLower(s) == "yes"
}

// PartnerScore is 5 for "yes" in any case and 1 otherwise.
func PartnerScore(partner string) int {
	if isYes(partner) {
		return 5
	}
	return 1
}

// BudgetScore looks up an exact bracket label. Unknown labels score 0.
func BudgetScore(bracket string) int {
	return budgetScores[dashReplacer.Replace(bracket)]
}

// HeadcountScore is shared by full-time, part-time and volunteer counts.
func HeadcountScore(count int) int {
	switch {
	case count > 20:
		return 5
	case count >= 11:
		return 4
	case count >= 6:
		return 3
	case count >= 0:
		return 2
	default:
		return 1
	}
}

// TeamScore scores the participant roles taken together. Role labels are
// matched case-sensitively anywhere in the combined text.
func TeamScore(roles ...string) int {
	score, _ := teamMatch(roles)
	return score
}

func teamMatch(roles []string) (int, string) {
	joined := strings.Join(roles, ", ")
	for _, rule := range teamRules {
		if rule.match(joined) {
			return rule.score, rule.name
		}
	}
	return 0, ""
}

func TimeCommitmentScore(answer string) int {
	if isYes(answer) {
		return 5
	}
	return 1
}

func FormCompletionScore(status string) int {
	switch strings.ToLower(status) {
	case "yes":
		return 5
	case "half":
		return 3
	case "no":
		return 1
	default:
		return 0
	}
}

package scoring

import (
	"intake-workers/internal/models"
)

// Score maps an applicant to its sub-scores. The composite is
// ScoreBreakdown.Total.
func Score(a models.ApplicantRecord) models.ScoreBreakdown {
	return models.ScoreBreakdown{
		Partner:        PartnerScore(a.Partner),
		Budget:         BudgetScore(a.Budget),
		FullTime:       HeadcountScore(a.FullTimeEmployees),
		PartTime:       HeadcountScore(a.PartTimeEmployees),
		Volunteer:      HeadcountScore(a.Volunteers),
		Team:           TeamScore(a.ParticipantRoles[:]...),
		TimeCommitment: TimeCommitmentScore(a.TimeCommitment),
		FormCompletion: FormCompletionScore(a.FormCompletion),
	}
}

// TeamRule names the team rule that matched, or "" when none did. It is
// logged alongside a score so reviewers can see why a team scored as it did.
func TeamRule(roles ...string) string {
	_, name := teamMatch(roles)
	return name
}

// internal/models/applicant.go
package models

// ApplicantRecord is one organization's application as read from the
// results sheet.
type ApplicantRecord struct {
	Organization      string         `json:"organization"`
	Cohort            string         `json:"cohort"`
	Partner           string         `json:"partner"`
	Budget            string         `json:"budget"`
	FullTimeEmployees int            `json:"fullTimeEmployees"`
	PartTimeEmployees int            `json:"partTimeEmployees"`
	Volunteers        int            `json:"volunteers"`
	ParticipantRoles  [4]string      `json:"participantRoles"`
	TimeCommitment    string         `json:"timeCommitment"`
	FormCompletion    string         `json:"formCompletion"`
	Processed         ProcessedState `json:"processed"`
}

// ScoreBreakdown holds the eight rubric sub-scores. The composite is never
// stored; Total always sums the current sub-scores.
type ScoreBreakdown struct {
	Partner        int `json:"partner"`
	Budget         int `json:"budget"`
	FullTime       int `json:"fullTime"`
	PartTime       int `json:"partTime"`
	Volunteer      int `json:"volunteer"`
	Team           int `json:"team"`
	TimeCommitment int `json:"timeCommitment"`
	FormCompletion int `json:"formCompletion"`
}

// Total is the composite score.
func (b ScoreBreakdown) Total() int {
	sum := 0
	for _, v := range b.Values() {
		sum += v
	}
	return sum
}

// Values returns the sub-scores in sheet column order.
func (b ScoreBreakdown) Values() [8]int {
	return [8]int{
		b.Partner,
		b.Budget,
		b.FullTime,
		b.PartTime,
		b.Volunteer,
		b.Team,
		b.TimeCommitment,
		b.FormCompletion,
	}
}

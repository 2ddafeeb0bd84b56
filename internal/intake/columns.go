package intake

import (
	"intake-workers/internal/models"
	"intake-workers/internal/sheet"
)

// Application Results headers.
const (
	ResultsScore               = "Score"
	ResultsStatus              = "Status"
	ResultsOrganization        = "Organization Name"
	ResultsCohort              = "Cohort"
	ResultsLocation            = "Location"
	ResultsBudget              = "Budget"
	ResultsFullTime            = "Full-time Employees"
	ResultsPartTime            = "Part-time Employees"
	ResultsVolunteers          = "Volunteers"
	ResultsPartner             = "Partner"
	ResultsBursary             = "Bursary Needed"
	ResultsFoundation          = "Community Foundation"
	ResultsBanking             = "Banking"
	ResultsWebsite             = "Website"
	ResultsMission             = "Mission"
	ResultsTimeCommitment      = "Time commitment"
	ResultsAppForm             = "App Form"
	ResultsPartnerScore        = "Partner Score"
	ResultsBudgetScore         = "Budget Score"
	ResultsFullTimeScore       = "Full Time Employee Score"
	ResultsPartTimeScore       = "Part Time Employee Score"
	ResultsVolunteerScore      = "Volunteer Score"
	ResultsTeamScore           = "Team Score"
	ResultsTimeCommitmentScore = "Time Commitment Score"
	ResultsAppCompletionScore  = "App Completion Score"
)

// ResultsParticipantRoles are the four role columns, in order.
var ResultsParticipantRoles = [4]string{
	"Participant 1 Role",
	"Participant 2 Role",
	"Participant 3 Role",
	"Participant 4 Role",
}

// SubScoreColumns follow the order of models.ScoreBreakdown.Values.
var SubScoreColumns = [8]string{
	ResultsPartnerScore,
	ResultsBudgetScore,
	ResultsFullTimeScore,
	ResultsPartTimeScore,
	ResultsVolunteerScore,
	ResultsTeamScore,
	ResultsTimeCommitmentScore,
	ResultsAppCompletionScore,
}

// Raw Application Data headers. These are the form's question texts.
const (
	RawCohort         = "Please select the cohort you are applying for: "
	RawOrganization   = "What is your organization's name?"
	RawLocation       = "Province/State"
	RawBudget         = "What is your organization's current annual budget?"
	RawFullTime       = "How many full-time staff does your organization employ?"
	RawPartTime       = "How many part-time/contract staff does your organization employ?"
	RawVolunteers     = "How many people regularly volunteer for your organization? This does not include Board members."
	RawBursary        = "Bursary Needed"
	RawFoundation     = "Who is your regional Community Foundation?"
	RawBanking        = "Whom do you bank with?"
	RawWebsite        = "Organization Website"
	RawMission        = "What is your organization's mission statement?"
	RawTimeCommitment = "Time commitment: Is your team able to set aside two days per month, over five months, for online pre-work, virtual sessions, and organization-specific coaching?"
	RawProcessed      = "Processed in Results Sheet"
)

// RawParticipantRoles feed Participant 1..4 Role.
var RawParticipantRoles = [4]string{
	"What is your role in your organization?",
	"Position (1)",
	"Position (2)",
	"Position (3)",
}

// Alumni Organizations headers.
const (
	LedgerOrganization = "Org Name"
	LedgerCohort       = "Cohort Name"
	LedgerDate         = "Date"
	LedgerName         = "Name"
	LedgerRole         = "Roll"
	LedgerEmail        = "Email"
	LedgerLocation     = "Location"
	LedgerBudget       = "Operating Budget"
	LedgerBanking      = "Banking info"
)

// Survey batch question headers.
const (
	SurveyOrganization = "What is your organization's name?"
	SurveyNamePosition = "What is your name and position?"
	SurveyEmail        = "What is your email address?"
	SurveyRegions      = "What region(s) and/or province(s) do you serve?"
	SurveyBudget       = "What is your current organizational budget?"
	SurveyBank         = "Whom do you bank with? This is not a mandatory question, although it does help us identify different partnerships and bursary opportunities to support organizations."
)

// resultsSchema resolves the results sheet once per run.
type resultsSchema struct {
	width        int
	score        sheet.Field
	status       sheet.Field
	organization sheet.Field
	cohort       sheet.Field
	location     sheet.Field
	budget       sheet.Field
	fullTime     sheet.Field
	partTime     sheet.Field
	volunteers   sheet.Field
	partner      sheet.Field
	bursary      sheet.Field
	foundation   sheet.Field
	banking      sheet.Field
	roles        [4]sheet.Field
	website      sheet.Field
	mission      sheet.Field
	timeCommit   sheet.Field
	appForm      sheet.Field
	subScores    [8]sheet.Field
}

func newResultsSchema(h *sheet.HeaderIndex) *resultsSchema {
	s := &resultsSchema{
		width:        h.Width(),
		score:        h.Field(ResultsScore),
		status:       h.Field(ResultsStatus),
		organization: h.Field(ResultsOrganization),
		cohort:       h.Field(ResultsCohort),
		location:     h.Field(ResultsLocation),
		budget:       h.Field(ResultsBudget),
		fullTime:     h.Field(ResultsFullTime),
		partTime:     h.Field(ResultsPartTime),
		volunteers:   h.Field(ResultsVolunteers),
		partner:      h.Field(ResultsPartner),
		bursary:      h.Field(ResultsBursary),
		foundation:   h.Field(ResultsFoundation),
		banking:      h.Field(ResultsBanking),
		website:      h.Field(ResultsWebsite),
		mission:      h.Field(ResultsMission),
		timeCommit:   h.Field(ResultsTimeCommitment),
		appForm:      h.Field(ResultsAppForm),
	}
	for i, name := range ResultsParticipantRoles {
		s.roles[i] = h.Field(name)
	}
	for i, name := range SubScoreColumns {
		s.subScores[i] = h.Field(name)
	}
	return s
}

// subScoreCols returns the sub-score columns, or nil when any is missing.
func (s *resultsSchema) subScoreCols() []int {
	cols := make([]int, 0, len(s.subScores))
	for _, f := range s.subScores {
		if !f.Resolved() {
			return nil
		}
		cols = append(cols, f.Col)
	}
	return cols
}

func (s *resultsSchema) applicant(values []string) models.ApplicantRecord {
	a := models.ApplicantRecord{
		Organization:      s.organization.String(values),
		Cohort:            s.cohort.String(values),
		Partner:           s.partner.String(values),
		Budget:            s.budget.String(values),
		FullTimeEmployees: s.fullTime.Int(values),
		PartTimeEmployees: s.partTime.Int(values),
		Volunteers:        s.volunteers.Int(values),
		TimeCommitment:    s.timeCommit.String(values),
		FormCompletion:    s.appForm.String(values),
	}
	for i, f := range s.roles {
		a.ParticipantRoles[i] = f.String(values)
	}
	return a
}

// row lays out a new results row. Partner and App Form stay blank for the
// reviewer to fill in.
func (s *resultsSchema) row(r models.ApplicationResult, score string) []string {
	values := make([]string, s.width)
	s.score.Put(values, score)
	s.status.Put(values, models.StatusPending)
	s.organization.Put(values, r.Organization)
	s.cohort.Put(values, r.Cohort)
	s.location.Put(values, r.Location)
	s.budget.Put(values, r.Budget)
	s.fullTime.Put(values, r.FullTimeEmployees)
	s.partTime.Put(values, r.PartTimeEmployees)
	s.volunteers.Put(values, r.Volunteers)
	s.bursary.Put(values, r.BursaryNeeded)
	s.foundation.Put(values, r.CommunityFoundation)
	s.banking.Put(values, r.Banking)
	for i, f := range s.roles {
		f.Put(values, r.ParticipantRoles[i])
	}
	s.website.Put(values, r.Website)
	s.mission.Put(values, r.Mission)
	s.timeCommit.Put(values, r.TimeCommitment)
	return values
}

type rawSchema struct {
	processed    sheet.Field
	cohort       sheet.Field
	organization sheet.Field
	location     sheet.Field
	budget       sheet.Field
	fullTime     sheet.Field
	partTime     sheet.Field
	volunteers   sheet.Field
	bursary      sheet.Field
	foundation   sheet.Field
	banking      sheet.Field
	roles        [4]sheet.Field
	website      sheet.Field
	mission      sheet.Field
	timeCommit   sheet.Field
}

func newRawSchema(h *sheet.HeaderIndex) *rawSchema {
	s := &rawSchema{
		processed:    h.Field(RawProcessed),
		cohort:       h.Field(RawCohort),
		organization: h.Field(RawOrganization),
		location:     h.Field(RawLocation),
		budget:       h.Field(RawBudget),
		fullTime:     h.Field(RawFullTime),
		partTime:     h.Field(RawPartTime),
		volunteers:   h.Field(RawVolunteers),
		bursary:      h.Field(RawBursary),
		foundation:   h.Field(RawFoundation),
		banking:      h.Field(RawBanking),
		website:      h.Field(RawWebsite),
		mission:      h.Field(RawMission),
		timeCommit:   h.Field(RawTimeCommitment),
	}
	for i, name := range RawParticipantRoles {
		s.roles[i] = h.Field(name)
	}
	return s
}

func (s *rawSchema) result(values []string) models.ApplicationResult {
	r := models.ApplicationResult{
		Organization:        s.organization.String(values),
		Cohort:              s.cohort.String(values),
		Location:            s.location.String(values),
		Budget:              s.budget.String(values),
		FullTimeEmployees:   s.fullTime.String(values),
		PartTimeEmployees:   s.partTime.String(values),
		Volunteers:          s.volunteers.String(values),
		BursaryNeeded:       s.bursary.String(values),
		CommunityFoundation: s.foundation.String(values),
		Banking:             s.banking.String(values),
		Website:             s.website.String(values),
		Mission:             s.mission.String(values),
		TimeCommitment:      s.timeCommit.String(values),
	}
	for i, f := range s.roles {
		r.ParticipantRoles[i] = f.String(values)
	}
	return r
}

type ledgerSchema struct {
	width        int
	organization sheet.Field
	cohort       sheet.Field
	date         sheet.Field
	name         sheet.Field
	role         sheet.Field
	email        sheet.Field
	location     sheet.Field
	budget       sheet.Field
	banking      sheet.Field
}

func newLedgerSchema(h *sheet.HeaderIndex) *ledgerSchema {
	return &ledgerSchema{
		width:        h.Width(),
		organization: h.Field(LedgerOrganization),
		cohort:       h.Field(LedgerCohort),
		date:         h.Field(LedgerDate),
		name:         h.Field(LedgerName),
		role:         h.Field(LedgerRole),
		email:        h.Field(LedgerEmail),
		location:     h.Field(LedgerLocation),
		budget:       h.Field(LedgerBudget),
		banking:      h.Field(LedgerBanking),
	}
}

func (s *ledgerSchema) key(values []string) models.LedgerKey {
	return models.LedgerKey{
		Organization: s.organization.String(values),
		Cohort:       s.cohort.String(values),
	}
}

// row lays out a ledger row; columns no survey field maps to stay blank.
func (s *ledgerSchema) row(e models.LedgerEntry) []string {
	values := make([]string, s.width)
	s.organization.Put(values, e.Organization)
	s.cohort.Put(values, e.Cohort)
	s.date.Put(values, e.Year)
	s.name.Put(values, e.ContactName)
	s.role.Put(values, e.ContactRole)
	s.email.Put(values, e.Email)
	s.location.Put(values, e.Location)
	s.budget.Put(values, e.Budget)
	s.banking.Put(values, e.Banking)
	return values
}

type surveySchema struct {
	organization sheet.Field
	namePosition sheet.Field
	email        sheet.Field
	regions      sheet.Field
	budget       sheet.Field
	bank         sheet.Field
}

func newSurveySchema(h *sheet.HeaderIndex) *surveySchema {
	return &surveySchema{
		organization: h.Field(SurveyOrganization),
		namePosition: h.Field(SurveyNamePosition),
		email:        h.Field(SurveyEmail),
		regions:      h.Field(SurveyRegions),
		budget:       h.Field(SurveyBudget),
		bank:         h.Field(SurveyBank),
	}
}

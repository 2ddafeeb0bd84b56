// internal/models/ledger.go
package models

// LedgerKey identifies an organization's entry for one cohort. No two ledger
// rows share a key.
type LedgerKey struct {
	Organization string
	Cohort       string
}

// LedgerEntry is a survey response mapped onto the ledger's columns.
type LedgerEntry struct {
	Organization string `json:"organization"`
	Cohort       string `json:"cohort"`
	Year         string `json:"year"`
	ContactName  string `json:"contactName"`
	ContactRole  string `json:"contactRole"`
	Email        string `json:"email"`
	Location     string `json:"location"`
	Budget       string `json:"budget"`
	Banking      string `json:"banking"`
}

func (e LedgerEntry) Key() LedgerKey {
	return LedgerKey{Organization: e.Organization, Cohort: e.Cohort}
}

// ApplicationResult is a raw application copied into the results sheet,
// waiting to be scored.
type ApplicationResult struct {
	Organization        string    `json:"organization"`
	Cohort              string    `json:"cohort"`
	Location            string    `json:"location"`
	Budget              string    `json:"budget"`
	FullTimeEmployees   string    `json:"fullTimeEmployees"`
	PartTimeEmployees   string    `json:"partTimeEmployees"`
	Volunteers          string    `json:"volunteers"`
	BursaryNeeded       string    `json:"bursaryNeeded"`
	CommunityFoundation string    `json:"communityFoundation"`
	Banking             string    `json:"banking"`
	ParticipantRoles    [4]string `json:"participantRoles"`
	Website             string    `json:"website"`
	Mission             string    `json:"mission"`
	TimeCommitment      string    `json:"timeCommitment"`
}

// StatusPending is the status of a result row that has not been reviewed.
const StatusPending = "Pending"

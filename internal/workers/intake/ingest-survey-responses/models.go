// internal/workers/intake/ingest-survey-responses/models.go
package ingestsurveyresponses

import "intake-workers/internal/common/validation"

type Input struct {
	// SourceSheet defaults to the table at the configured position.
	SourceSheet  string `json:"sourceSheet"`
	LedgerSheet  string `json:"ledgerSheet"`
	DeleteSource *bool  `json:"deleteSource"`
}

type Output struct {
	RunID         string `json:"runId"`
	Source        string `json:"source"`
	Cohort        string `json:"cohort"`
	Copied        int    `json:"copied"`
	Duplicates    int    `json:"duplicates"`
	BatchRepeats  int    `json:"batchRepeats"`
	SourceDeleted bool   `json:"sourceDeleted"`
	Message       string `json:"message"`
}

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"sourceSheet":  {"type": "string"},
		"ledgerSheet":  {"type": "string"},
		"deleteSource": {"type": "boolean"}
	}
}`)

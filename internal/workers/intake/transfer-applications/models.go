// internal/workers/intake/transfer-applications/models.go
package transferapplications

import "intake-workers/internal/common/validation"

type Input struct {
	RawSheet     string `json:"rawSheet"`
	ResultsSheet string `json:"resultsSheet"`
}

type Output struct {
	RunID       string `json:"runId"`
	Transferred int    `json:"transferred"`
	Skipped     int    `json:"skipped"`
	Message     string `json:"message"`
}

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"rawSheet":     {"type": "string"},
		"resultsSheet": {"type": "string"}
	}
}`)

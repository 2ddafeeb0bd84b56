// internal/workers/intake/assign-score/models.go
package assignscore

import "intake-workers/internal/common/validation"

type Input struct {
	Sheet    string `json:"sheet"`
	StartRow int    `json:"startRow"`
	NumRows  int    `json:"numRows"`
}

type Output struct {
	RunID      string `json:"runId"`
	Sheet      string `json:"sheet"`
	RowsScored int    `json:"rowsScored"`
	Ignored    int    `json:"ignored"`
	Message    string `json:"message"`
}

// The selection is checked by the pipeline so that an empty one gets the
// same user message whether it came from a job or the CLI.
var inputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"sheet":    {"type": "string"},
		"startRow": {"type": "integer"},
		"numRows":  {"type": "integer"}
	}
}`)

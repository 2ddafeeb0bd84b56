// internal/models/processed.go
package models

// ProcessedState tracks whether a raw application row has been moved to the
// results sheet.
type ProcessedState int

const (
	Unprocessed ProcessedState = iota
	InProgress
	Done
)

// Marker cell values written by people and by the form integration.
const (
	MarkerDone       = "Yes"
	MarkerInProgress = "Loading App Data"
)

// ParseProcessedState reads a marker cell. Matching is exact; anything other
// than the two known markers is unprocessed.
func ParseProcessedState(cell string) ProcessedState {
	switch cell {
	case MarkerDone:
		return Done
	case MarkerInProgress:
		return InProgress
	default:
		return Unprocessed
	}
}

func (s ProcessedState) String() string {
	switch s {
	case Done:
		return "done"
	case InProgress:
		return "in-progress"
	default:
		return "unprocessed"
	}
}

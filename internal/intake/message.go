package intake

import "fmt"

func IngestMessage(copied, duplicates int) string {
	if duplicates > 0 {
		return fmt.Sprintf("Transfer complete! %d row(s) have been copied.\n"+
			"There were %d rows that already exist in the Master Tracker that were not copied over.",
			copied, duplicates)
	}
	return fmt.Sprintf("Transfer complete! %d rows have been copied.", copied)
}

func TransferMessage(transferred, skipped int) string {
	return fmt.Sprintf("Transfer complete! %d application(s) moved to Application Results. %d row(s) skipped.",
		transferred, skipped)
}

func ScoreMessage(scored int) string {
	return fmt.Sprintf("Scoring complete! %d row(s) scored.", scored)
}

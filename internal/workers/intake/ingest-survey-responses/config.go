// internal/workers/intake/ingest-survey-responses/config.go
package ingestsurveyresponses

import (
	"time"

	"intake-workers/internal/common/config"
)

type Config struct {
	Timeout        time.Duration
	LedgerSheet    string
	SourcePosition int
	DeleteSource   bool
}

func LoadConfig(cfg *config.Config) *Config {
	w := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout:        config.GetDuration(w.Timeout),
		LedgerSheet:    cfg.Intake.LedgerSheet,
		SourcePosition: cfg.Intake.SourceSheetPosition,
		DeleteSource:   cfg.Intake.DeleteSourceOnIngest,
	}
}

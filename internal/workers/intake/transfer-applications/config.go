// internal/workers/intake/transfer-applications/config.go
package transferapplications

import (
	"time"

	"intake-workers/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	RawSheet     string
	ResultsSheet string
}

func LoadConfig(cfg *config.Config) *Config {
	w := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout:      config.GetDuration(w.Timeout),
		RawSheet:     cfg.Intake.RawSheet,
		ResultsSheet: cfg.Intake.ResultsSheet,
	}
}

// internal/workers/intake/assign-score/config.go
package assignscore

import (
	"time"

	"intake-workers/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	ResultsSheet string
}

func LoadConfig(cfg *config.Config) *Config {
	w := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout:      config.GetDuration(w.Timeout),
		ResultsSheet: cfg.Intake.ResultsSheet,
	}
}

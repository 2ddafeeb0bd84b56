package main

import (
	"context"
	"fmt"
	"time"

	"intake-workers/internal/common/config"
	"intake-workers/internal/common/database"
	"intake-workers/internal/common/errors"
	"intake-workers/internal/common/logger"
	"intake-workers/internal/common/notify"
	"intake-workers/internal/reports"
	"intake-workers/internal/sheet"
	"intake-workers/internal/workers/intake/runner"
)

// env is what every subcommand needs. close releases connections.
type env struct {
	cfg     *config.Config
	log     logger.Logger
	run     *runner.Runner
	reports *reports.Store
	closers []func() error
}

func loadConfig() (*config.Config, error) {
	if rootFlags.configPath != "" {
		return config.LoadFromFile(rootFlags.configPath)
	}
	return config.Load()
}

// setup opens the workbook, the optional report store and the notifier.
// withWorkbook is false for commands that only read reports.
func setup(ctx context.Context, withWorkbook bool) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if rootFlags.workbook != "" {
		cfg.Intake.WorkbookFile = rootFlags.workbook
	}
	level := cfg.Logging.Level
	if rootFlags.logLevel != "" {
		level = rootFlags.logLevel
	}

	e := &env{
		cfg: cfg,
		log: logger.NewStructured(level, "console", "stderr"),
	}

	var wb sheet.Workbook
	if withWorkbook {
		if wb, err = e.openWorkbook(ctx); err != nil {
			e.close()
			return nil, err
		}
	}
	e.run = runner.New(wb, e.log)

	if cfg.Database.Redis.Enabled() {
		rc, err := database.NewRedis(cfg.Database.Redis)
		if err == nil {
			err = rc.Ping(ctx)
		}
		if err != nil {
			e.log.Warn("redis unavailable, run report not stored", map[string]interface{}{"error": err})
		} else {
			e.closers = append(e.closers, rc.Close)
			e.reports = reports.NewStore(rc.Client, time.Duration(cfg.Intake.ReportTTL)*time.Second)
			e.run.Reports = e.reports
		}
	}

	n, err := notify.New(ctx, cfg.Notifications, e.log)
	if err != nil {
		e.close()
		return nil, err
	}
	e.run.Notifier = n
	return e, nil
}

func (e *env) openWorkbook(ctx context.Context) (sheet.Workbook, error) {
	if path := e.cfg.Intake.WorkbookFile; path != "" {
		fw, err := sheet.OpenFileWorkbook(path)
		if err != nil {
			return nil, err
		}
		return fw, nil
	}

	pg, err := database.NewPostgres(e.cfg.Database.Postgres)
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, pg.Close)
	if err := pg.Ping(ctx); err != nil {
		return nil, errors.NewDatabaseConnectionFailedError(err)
	}
	pw := sheet.NewPostgresWorkbook(pg.DB)
	if err := pw.EnsureSchema(ctx); err != nil {
		return nil, errors.NewDatabaseConnectionFailedError(err)
	}
	return pw, nil
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i]()
	}
}

// userError turns a failed run into the text a reviewer should see.
func userError(err error) error {
	return fmt.Errorf("%s", errors.UserMessage(err))
}

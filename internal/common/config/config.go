// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Intake        IntakeConfig            `mapstructure:"intake"`
	Metrics       MetricsConfig           `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// Validate checks the fields needed to open a connection.
func (p PostgresConfig) Validate() error {
	if p.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if p.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if p.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}
	return nil
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a redis address was configured. Run reports are
// skipped without one.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// NotificationConfig selects where run summaries are delivered.
type NotificationConfig struct {
	// Channels is any combination of "log", "email" and "sms".
	Channels []string `mapstructure:"channels"`
	Email    struct {
		FromEmail  string   `mapstructure:"from_email"`
		Recipients []string `mapstructure:"recipients"`
		Subject    string   `mapstructure:"subject"`
	} `mapstructure:"email"`
	SMS struct {
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// IntakeConfig names the sheets the pipeline works on.
type IntakeConfig struct {
	RawSheet             string `mapstructure:"raw_sheet"`
	ResultsSheet         string `mapstructure:"results_sheet"`
	LedgerSheet          string `mapstructure:"ledger_sheet"`
	SourceSheetPosition  int    `mapstructure:"source_sheet_position"`
	DeleteSourceOnIngest bool   `mapstructure:"delete_source_on_ingest"`
	ReportTTL            int    `mapstructure:"report_ttl"` // seconds
	WorkbookFile         string `mapstructure:"workbook_file"`
}

type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	workbook   string
	logLevel   string
}

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Run the Master Tracker intake steps by hand",
	Long: "tracker scores selected results rows, ingests survey batches into the\n" +
		"alumni ledger and transfers raw applications, the same way the workers do.",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", "", "Config file (default: configs/config.yaml)")
	f.StringVar(&rootFlags.workbook, "workbook", "", "Work on a JSON workbook file instead of postgres")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Override logging.level")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.Version = version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	ta "intake-workers/internal/workers/intake/transfer-applications"
)

var transferFlags struct {
	raw     string
	results string
}

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Move unprocessed raw applications to the results sheet",
	RunE:  runTransfer,
}

func init() {
	f := transferCmd.Flags()
	f.StringVar(&transferFlags.raw, "raw", "", "Raw application sheet (default: intake.raw_sheet)")
	f.StringVar(&transferFlags.results, "results", "", "Results sheet (default: intake.results_sheet)")
}

func runTransfer(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.close()

	out, err := ta.NewHandler(ta.LoadConfig(e.cfg), e.run, e.log).Execute(ctx, &ta.Input{
		RawSheet:     transferFlags.raw,
		ResultsSheet: transferFlags.results,
	})
	if err != nil {
		return userError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.Message)
	return nil
}

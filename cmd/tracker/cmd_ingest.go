package main

import (
	"fmt"

	"github.com/spf13/cobra"

	isr "intake-workers/internal/workers/intake/ingest-survey-responses"
)

var ingestFlags struct {
	source       string
	ledger       string
	deleteSource bool
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Copy a survey batch into the alumni ledger",
	Long: "ingest copies every organization in a survey batch that the ledger does\n" +
		"not already list for the batch's cohort. Without --source the sheet at\n" +
		"intake.source_sheet_position is used.",
	RunE: runIngest,
}

func init() {
	f := ingestCmd.Flags()
	f.StringVar(&ingestFlags.source, "source", "", "Survey batch sheet")
	f.StringVar(&ingestFlags.ledger, "ledger", "", "Ledger sheet (default: intake.ledger_sheet)")
	f.BoolVar(&ingestFlags.deleteSource, "delete-source", false, "Delete the batch sheet after copying")
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.close()

	input := &isr.Input{
		SourceSheet: ingestFlags.source,
		LedgerSheet: ingestFlags.ledger,
	}
	if cmd.Flags().Changed("delete-source") {
		input.DeleteSource = &ingestFlags.deleteSource
	}

	out, err := isr.NewHandler(isr.LoadConfig(e.cfg), e.run, e.log).Execute(ctx, input)
	if err != nil {
		return userError(err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, out.Message)
	if out.BatchRepeats > 0 {
		fmt.Fprintf(w, "Warning: %d organization(s) appear more than once in %s and were copied each time.\n",
			out.BatchRepeats, out.Source)
	}
	if out.SourceDeleted {
		fmt.Fprintf(w, "Deleted %s.\n", out.Source)
	}
	return nil
}

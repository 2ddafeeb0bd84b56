package main

import (
	"fmt"

	"github.com/spf13/cobra"

	as "intake-workers/internal/workers/intake/assign-score"
)

var scoreFlags struct {
	sheet    string
	startRow int
	numRows  int
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a block of rows on the results sheet",
	RunE:  runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.StringVar(&scoreFlags.sheet, "sheet", "", "Results sheet (default: intake.results_sheet)")
	f.IntVar(&scoreFlags.startRow, "start-row", 0, "First row to score, 1-based (required)")
	f.IntVar(&scoreFlags.numRows, "rows", 1, "Number of rows to score")

	_ = scoreCmd.MarkFlagRequired("start-row")
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.close()

	cfg := as.LoadConfig(e.cfg)
	out, err := as.NewHandler(cfg, e.run, e.log).Execute(ctx, &as.Input{
		Sheet:    scoreFlags.sheet,
		StartRow: scoreFlags.startRow,
		NumRows:  scoreFlags.numRows,
	})
	if err != nil {
		return userError(err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, out.Message)
	if out.Ignored > 0 {
		fmt.Fprintf(w, "%d selected row(s) were not data rows and were ignored.\n", out.Ignored)
	}
	return nil
}

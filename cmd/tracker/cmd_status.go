package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"intake-workers/internal/reports"
)

var statusFlags struct {
	kind  string
	runID string
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest stored run report of each kind",
	RunE:  runStatus,
}

func init() {
	f := statusCmd.Flags()
	f.StringVar(&statusFlags.kind, "kind", "", "Only this kind: score, ingest or transfer")
	f.StringVar(&statusFlags.runID, "run-id", "", "Show one run (requires --kind)")
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if statusFlags.runID != "" && statusFlags.kind == "" {
		return fmt.Errorf("--run-id requires --kind")
	}

	ctx := cmd.Context()
	e, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer e.close()
	if e.reports == nil {
		return fmt.Errorf("no report store configured (database.redis.address)")
	}

	out := cmd.OutOrStdout()
	if statusFlags.runID != "" {
		rep, err := e.reports.Get(ctx, statusFlags.kind, statusFlags.runID)
		if err != nil {
			return err
		}
		printReport(out, rep)
		return nil
	}

	kinds := reports.Kinds
	if statusFlags.kind != "" {
		kinds = []string{statusFlags.kind}
	}
	for _, kind := range kinds {
		rep, err := e.reports.Latest(ctx, kind)
		if stderrors.Is(err, reports.ErrNotFound) {
			fmt.Fprintf(out, "%-9s no runs recorded\n", kind)
			continue
		}
		if err != nil {
			return err
		}
		printReport(out, rep)
	}
	return nil
}

func printReport(w io.Writer, rep *reports.Report) {
	fmt.Fprintf(w, "%-9s %s  %s (%s)\n", rep.Kind, rep.RunID,
		rep.FinishedAt.Local().Format(time.RFC1123), rep.Duration().Round(time.Millisecond))
	fmt.Fprintf(w, "          %s\n", rep.Message)
	for _, k := range sortedKeys(rep.Counts) {
		fmt.Fprintf(w, "          %s: %d\n", k, rep.Counts[k])
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

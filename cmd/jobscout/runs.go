package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-scout/internal/config"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent search runs from the audit log",
	RunE:  runRuns,
}

var runsLimit int

func init() {
	runsCmd.Flags().StringVarP(&searchConfigPath, "config", "c", "config/settings.yaml", "Path to settings YAML")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum number of runs to show")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(_ *cobra.Command, _ []string) error {
	settings, err := config.Load(searchConfigPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := openStore(ctx, settings)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListSearchRuns(ctx, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No search runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tPLATFORM\tKEYWORD\tRAW\tFILTERED\tDURATION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.StartedAt.Format("2006-01-02 15:04"),
			run.Platform,
			run.Keyword,
			run.RawCount,
			run.FilteredCount,
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second),
		)
	}
	return w.Flush()
}

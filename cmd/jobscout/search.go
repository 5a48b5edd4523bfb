package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-scout/internal/config"
	"github.com/jonathan/job-scout/internal/db"
	"github.com/jonathan/job-scout/internal/observability"
	"github.com/jonathan/job-scout/internal/pipeline"
	"github.com/jonathan/job-scout/internal/platform"
	"github.com/jonathan/job-scout/internal/platform/linkedin"
	"github.com/jonathan/job-scout/internal/profile"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run all configured searches through the discovery pipeline",
	Long:  "Run every search in the settings file: quota gate, browser search, filter chain, scoring, and persistence. Use --dry-run to preview quota status without opening a browser.",
	RunE:  runSearch,
}

var (
	searchConfigPath string
	searchDryRun     bool
	searchExportPath string
	searchVerbose    bool

	registerAdapters sync.Once
)

func init() {
	searchCmd.Flags().StringVarP(&searchConfigPath, "config", "c", "config/settings.yaml", "Path to settings YAML")
	searchCmd.Flags().BoolVar(&searchDryRun, "dry-run", false, "Print quota status per search without running anything")
	searchCmd.Flags().StringVar(&searchExportPath, "export", "", "Write a JSON report of all scored candidates to this path")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Print per-search result details")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, _ []string) error {
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

	printer := observability.NewPrinter(os.Stdout)

	if searchDryRun {
		return dryRun(ctx, store, settings, printer)
	}

	// Register once; watch mode calls runSearch repeatedly.
	registerAdapters.Do(func() {
		platform.Register(linkedin.New(settings.Browser))
	})

	orch := pipeline.New(store, settings)
	if settings.ProfilePath != "" {
		prof, err := profile.LoadProfile(settings.ProfilePath)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		orch.Profile = prof
	}

	fmt.Printf("Running %d searches...\n", len(settings.Searches))
	summary, runErr := orch.Run(ctx)

	if searchVerbose {
		for _, r := range summary.Results {
			printer.PrintSearchResult(r)
		}
	}
	printer.PrintRunSummary(summary)

	if searchExportPath != "" && len(summary.Results) > 0 {
		if err := pipeline.WriteExport(summary.Results, searchExportPath); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", searchExportPath)
	}

	return runErr
}

// dryRun prints the quota gate and remaining candidate slots for each
// configured search without touching a browser.
func dryRun(ctx context.Context, store *db.DB, settings *config.Settings, printer *observability.Printer) error {
	quota := pipeline.NewQuotaManager(store, settings.Quotas, nil)
	for _, search := range settings.Searches {
		canSearch, err := quota.CanSearch(ctx, search.Platform)
		if err != nil {
			return err
		}
		remaining, err := quota.RemainingCandidates(ctx, search.Platform)
		if err != nil {
			return err
		}
		printer.PrintDryRun(search.Keyword, search.Platform, canSearch, remaining)
	}
	return nil
}

// openStore connects to the configured database and ensures the schema
// exists. DATABASE_URL overrides the settings file.
func openStore(ctx context.Context, settings *config.Settings) (*db.DB, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = settings.Database.URL
	}
	if url == "" {
		return nil, fmt.Errorf("no database configured (set database.url in settings or DATABASE_URL)")
	}

	store, err := db.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

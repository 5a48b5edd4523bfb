package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the discovery pipeline on a schedule",
	Long:  "Run the search pipeline repeatedly on a cron schedule. The date-keyed quota counters make repeated runs safe: once a day's quota is exhausted, later runs skip until midnight.",
	RunE:  runWatch,
}

var watchSchedule string

func init() {
	watchCmd.Flags().StringVarP(&searchConfigPath, "config", "c", "config/settings.yaml", "Path to settings YAML")
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "0 9 * * *", "Cron schedule for search runs")
	watchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Print per-search result details")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	c := cron.New()
	_, err := c.AddFunc(watchSchedule, func() {
		log.Printf("scheduled run starting")
		if err := runSearch(nil, nil); err != nil {
			log.Printf("scheduled run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", watchSchedule, err)
	}

	c.Start()
	fmt.Printf("Watching on schedule %q, press Ctrl-C to stop\n", watchSchedule)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	<-c.Stop().Done()
	return nil
}

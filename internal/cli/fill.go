package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmfreder123/az-boards/internal/pipeline"
)

var (
	fillMaster   string
	fillCCD      string
	fillStaging  string
	fillMatchLog string
	fillTimeout  time.Duration
	fillWorkers  int
	fillNoCache  bool
)

// fillCmd represents the fill command
var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Download, match, and stage rows for missing district-years",
	Long: `Fill runs the complete gap-fill pipeline:
- Load the authoritative table and compute missing (district, year) pairs
- Download each county-year precinct file that can still contribute
- Extract governing-board races, aggregate precinct votes per candidate
- Match races to CTDS codes with the curated fragment table
- Stage one new row per candidate for previously-missing pairs only

Existing rows are never modified; output goes to the staging table and the
match log. Running fill twice produces an empty staging table the second
time.

Example:
  azboards fill
  azboards fill --staging new_rows.csv --match-log match_log.json
  azboards fill --workers 4 --no-cache`,
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)

	fillCmd.Flags().StringVar(&fillMaster, "master", "", "authoritative table CSV (overrides config)")
	fillCmd.Flags().StringVar(&fillCCD, "ccd", "", "CCD cross-reference CSV (overrides config)")
	fillCmd.Flags().StringVar(&fillStaging, "staging", "", "staged new-rows output CSV (overrides config)")
	fillCmd.Flags().StringVar(&fillMatchLog, "match-log", "", "match log output JSON (overrides config)")
	fillCmd.Flags().DurationVar(&fillTimeout, "timeout", 30*time.Minute, "overall run timeout")
	fillCmd.Flags().IntVar(&fillWorkers, "workers", 0, "county-year units processed concurrently (overrides config)")
	fillCmd.Flags().BoolVar(&fillNoCache, "no-cache", false, "disable the download cache (force fresh fetches)")
}

func runFill(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if fillMaster != "" {
		cfg.Paths.MasterCSV = fillMaster
	}
	if fillCCD != "" {
		cfg.Paths.CCDCSV = fillCCD
	}
	if fillStaging != "" {
		cfg.Paths.Staging = fillStaging
	}
	if fillMatchLog != "" {
		cfg.Paths.MatchLog = fillMatchLog
	}
	if fillWorkers > 0 {
		cfg.Workers.CountyYearWorkers = fillWorkers
	}
	if fillNoCache {
		cfg.Cache.Enabled = false
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), fillTimeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	res, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("gap-fill run failed: %w", err)
	}
	if err := engine.Emit(res); err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}

	pipeline.RenderSummary(os.Stdout, res)
	fmt.Printf("\nStaged rows: %s\nMatch log:   %s\n", cfg.Paths.Staging, cfg.Paths.MatchLog)
	return nil
}

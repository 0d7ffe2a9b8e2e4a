package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmfreder123/az-boards/internal/master"
	"github.com/jmfreder123/az-boards/internal/pipeline"
)

var planMaster string

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "List missing district-years without downloading anything",
	Long: `Plan loads the authoritative table, derives the set of known districts
and filled (district, year) pairs, and prints every combination still
missing, grouped into the county-year source files that could supply it.

No network access, no writes. Use it to see what a fill run would attempt.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planMaster, "master", "", "authoritative table CSV (overrides config)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if planMaster != "" {
		cfg.Paths.MasterCSV = planMaster
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	t, err := master.Load(cfg.Paths.MasterCSV)
	if err != nil {
		return fmt.Errorf("authoritative table: %w", err)
	}

	pipeline.RenderPlan(os.Stdout, engine.BuildPlan(t))
	return nil
}

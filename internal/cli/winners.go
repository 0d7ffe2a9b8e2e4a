package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmfreder123/az-boards/internal/master"
)

var (
	winnersMaster string
	winnersSeats  string
	winnersOut    string
)

// winnersCmd represents the winners command
var winnersCmd = &cobra.Command{
	Use:   "winners",
	Short: "Fill the winner column from seat counts and vote totals",
	Long: `Winners completes the winner column of the table in two passes:

1. District-years where some rows already carry YES: unmarked real
   candidates become NO.
2. District-years with no markings and a known seat count in the summary
   file: the top-N candidates by total votes become YES, the rest NO.

Write-in buckets, over/under votes, and ballot measures always stay blank.
The result goes to a separate output file; the input table is never
modified in place.`,
	RunE: runWinners,
}

func init() {
	rootCmd.AddCommand(winnersCmd)

	winnersCmd.Flags().StringVar(&winnersMaster, "master", "", "authoritative table CSV (overrides config)")
	winnersCmd.Flags().StringVar(&winnersSeats, "seats", "", "district-year seat summary CSV (overrides config)")
	winnersCmd.Flags().StringVar(&winnersOut, "out", "az_school_board_master_winners.csv", "output CSV path")
}

func runWinners(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if winnersMaster != "" {
		cfg.Paths.MasterCSV = winnersMaster
	}
	if winnersSeats != "" {
		cfg.Paths.SummaryCSV = winnersSeats
	}

	t, err := master.Load(cfg.Paths.MasterCSV)
	if err != nil {
		return fmt.Errorf("authoritative table: %w", err)
	}
	seats, err := master.LoadSeatSummary(cfg.Paths.SummaryCSV)
	if err != nil {
		return fmt.Errorf("seat summary: %w", err)
	}

	stats := master.PopulateWinners(t, seats)
	if err := t.Write(winnersOut); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Printf("Winner population complete: %s\n", winnersOut)
	fmt.Printf("  already complete:   %d rows\n", stats.AlreadyComplete)
	fmt.Printf("  losers filled:      %d rows in %d district-years\n", stats.LosersFilled, stats.LoserGroups)
	fmt.Printf("  inferred from seats: %d rows in %d district-years\n", stats.InferredRows, stats.InferredGroups)
	fmt.Printf("  no seat info:       %d rows left untouched\n", stats.NoSeatsInfo)
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verilens/verilens/internal/history"
	"github.com/verilens/verilens/internal/pipeline"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent scan records",
	Long: `History lists stored scan records, newest first.

Example:
  verilens history
  verilens history --limit 10`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of records to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if !cfg.History.Enabled || cfg.History.Dir == "" {
		return fmt.Errorf("history is disabled")
	}

	store := history.NewStore(cfg.History.Dir)
	records, err := store.List(historyLimit)
	if err != nil {
		return err
	}
	total, err := store.Count()
	if err != nil {
		return err
	}

	if total == 0 {
		fmt.Println("No scans recorded yet.")
		return nil
	}

	renderer := pipeline.NewRenderer(cfg.Output.NoColor)
	for i := range records {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("[%s]\n", records[i].CreatedAt.Format("Jan 2, 2006 15:04 MST"))
		renderer.RenderSummary(&records[i])
	}
	fmt.Printf("\nShowing %d of %d records\n", len(records), total)
	return nil
}
